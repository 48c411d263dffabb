package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
)

func TestClassify(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}
	boom := errors.New("connection reset")

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, slot.ErrSlotNotFound},
		{"wrapped not found", fmt.Errorf("first: %w", gorm.ErrRecordNotFound), slot.ErrSlotNotFound},
		{"pg unique", unique, slot.ErrSlotOccupied},
		{"wrapped pg unique", fmt.Errorf("create: %w", unique), slot.ErrSlotOccupied},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, slot.ErrSlotOccupied},
		{"business passes through", booking.ErrNotOwner, booking.ErrNotOwner},
	}
	for _, tc := range cases {
		got := classify("op", tc.err, slot.ErrSlotNotFound, slot.ErrSlotOccupied)
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}

	for _, err := range []error{boom, fk} {
		got := classify("insert_open", err, slot.ErrSlotNotFound, slot.ErrSlotOccupied)
		var se *httperr.StorageError
		if !errors.As(got, &se) {
			t.Fatalf("%v: want StorageError, got %T", err, got)
		}
		if se.Op != "insert_open" || !errors.Is(got, err) {
			t.Fatalf("storage error lost context: %+v", se)
		}
	}
}

func TestClassifyWithoutSentinels(t *testing.T) {
	got := classify("get", gorm.ErrRecordNotFound, nil, nil)
	var se *httperr.StorageError
	if !errors.As(got, &se) {
		t.Fatalf("missing row without notFound sentinel should be a StorageError, got %v", got)
	}

	got = classify("create", &pgconn.PgError{Code: "23505"}, nil, nil)
	if !errors.As(got, &se) {
		t.Fatalf("unique violation without conflict sentinel should be a StorageError, got %v", got)
	}
}
