package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE documents;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", "created_at", "created_at"},
		{"valid field returns field", "barcode", "created_at", "barcode"},
		{"invalid field returns default", "secret_column", "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE documents;--", "created_at", "created_at"},
		{"case sensitive - uppercase invalid", "BARCODE", "created_at", "created_at"},
		{"whitespace around valid field returns field", "  number  ", "created_at", "number"},
		{"field with quotes injection returns default", "barcode'--", "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, DocumentSortFields, tt.defaultField))
		})
	}
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"DocumentSortFields": DocumentSortFields,
		"ProductSortFields":  ProductSortFields,
		"LotSortFields":      LotSortFields,
	}

	for name, whitelist := range whitelists {
		t.Run(name, func(t *testing.T) {
			assert.True(t, whitelist["id"], "%s should allow 'id'", name)
			assert.True(t, whitelist["created_at"], "%s should allow 'created_at'", name)
			assert.Greater(t, len(whitelist), 3)
		})
	}
}

func TestValidateSortField_InjectionPayloads(t *testing.T) {
	payloads := []string{
		"id' OR '1'='1",
		"id UNION SELECT * FROM app_users",
		"id, (SELECT password_hash FROM app_users)",
		"id/**/;DROP TABLE documents",
		"id\n; DROP TABLE documents",
	}

	for _, payload := range payloads {
		result := ValidateSortField(payload, DocumentSortFields, "created_at")
		assert.Equal(t, "created_at", result, "payload should be rejected: %s", payload)
		assert.Equal(t, "DESC", ValidateSortOrder(payload))
	}
}
