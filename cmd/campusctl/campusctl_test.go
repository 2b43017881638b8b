package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

func TestNewAdmin(t *testing.T) {
	admin, err := newAdmin("  Ops@Campus.EDU ", " Ops ", "long-enough-pw")
	require.NoError(t, err)

	assert.Equal(t, "ops@campus.edu", admin.Email)
	assert.Equal(t, "Ops", admin.Name)
	assert.NotEmpty(t, admin.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("long-enough-pw")))
}

func TestNewAdmin_Rejects(t *testing.T) {
	_, err := newAdmin(" ", "x", "long-enough-pw")
	assert.Error(t, err)

	_, err = newAdmin("a@b.c", "x", "short")
	assert.True(t, errors.Is(err, domain.ErrPasswordTooShort))
}

func TestReadTransactions(t *testing.T) {
	bundled, err := readTransactions(domain.DatasetVendor, "")
	require.NoError(t, err)
	assert.NotEmpty(t, bundled)

	path := filepath.Join(t.TempDir(), "txs.json")
	body := `[{"StudentID":"STU001","Category":"Canteen","Item":"Tea","Quantity":2,"PricePerUnit":2.5,"TotalAmount":5,"TransactionDate":"2024-01-01"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	txs, err := readTransactions(domain.DatasetStudent, path)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "STU001", txs[0].StudentID)
	assert.Equal(t, 5.0, txs[0].TotalAmount)

	_, err = readTransactions(domain.DatasetStudent, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSeedCmd_RejectsUnknownDataset(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"seed", "--dataset", "library"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestOpenDB_RequiresURL(t *testing.T) {
	dbURL = ""
	_, err := openDB()
	assert.Error(t, err)
}
