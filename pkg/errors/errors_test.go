package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeDataset, status: http.StatusUnprocessableEntity, publicMsg: "dataset could not be loaded", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "invalid from date")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "invalid from date" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "from"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "reading gcs object")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("loading: %w", New(CodeDataset, "no records"))
	if got := As(err); got == nil || got.Code() != CodeDataset {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpWalksChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(CodeDependency, stdErrors.New("inner"), "query"))
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if dump.PGCode != "" {
		t.Fatalf("unexpected pg code %q", dump.PGCode)
	}
}

func TestDumpExtractsPostgresDiagnostics(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "42P01", TableName: "sales_records", Message: "relation does not exist"}
	err := Wrap(CodeDependency, fmt.Errorf("select rows: %w", pgxErr), "reading sql source")

	fields := Dump(err).LogFields()
	if fields["pg_code"] != "42P01" || fields["pg_table"] != "sales_records" {
		t.Fatalf("expected pgx diagnostics, got %v", fields)
	}
	if _, ok := fields["pg_constraint"]; ok {
		t.Fatalf("empty pg_constraint should be omitted: %v", fields)
	}
	if fields["error_code"] != CodeDependency {
		t.Fatalf("expected dependency code, got %v", fields["error_code"])
	}

	pqErr := &pq.Error{Code: "23505", Constraint: "sales_records_pkey"}
	dump := Dump(fmt.Errorf("insert: %w", pqErr))
	if dump.PGCode != "23505" || dump.PGConstraint != "sales_records_pkey" {
		t.Fatalf("expected pq diagnostics, got %+v", dump)
	}
}

func TestLogFieldsOmitsPostgresWhenAbsent(t *testing.T) {
	fields := Dump(stdErrors.New("boom")).LogFields()
	for key := range fields {
		if len(key) > 3 && key[:3] == "pg_" {
			t.Fatalf("unexpected field %s", key)
		}
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field %v", fields["error"])
	}
}
