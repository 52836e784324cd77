package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seido-dojo/portal-api/internal/dto"
	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

func structuredContactHeaders() []string {
	return append(append([]string{}, baseRequestHeaders...), models.ContactColumns...)
}

func newTestContactService(store *mockRequestStore) *ContactService {
	svc := NewContactService(store, validator.New(), zap.NewNop(), time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"0400123456", "0400 123 456", true},
		{"0400 123 456", "0400 123 456", true},
		{"0400-123-456", "0400 123 456", true},
		{" 04 0012 3456 ", "0400 123 456", true},
		{"040012345", "", false},    // 9 digits
		{"04001234567", "", false},  // 11 digits
		{"4400123456", "", false},   // no leading zero
		{"0400x123456", "", false},  // stray letter
		{"0400+123456", "", false},  // unsupported separator
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestContactServiceSubmitPhoneStructured(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredContactHeaders()}}
	svc := newTestContactService(store)

	res, err := svc.Submit(context.Background(), testMember(), dto.ContactUpdatePayload{
		UpdateType: models.UpdateTypePhone,
		Name:       "Aiko Tanaka",
		Phone:      "0400-123-456",
	})
	require.NoError(t, err)
	assert.True(t, res.Structured)
	assert.Equal(t, models.RequestTypeContact, res.RequestType)
	assert.Equal(t, models.StatusNew, res.Status)

	require.Len(t, store.appendedRows, 1)
	row := store.appendedRows[0]
	assert.Equal(t, models.UpdateTypePhone, row.Get(models.ColUpdateType))
	assert.Equal(t, "Aiko Tanaka", row.Get(models.ColUpdateName))
	assert.Equal(t, "0400 123 456", row.Get(models.ColUpdatePhone))
	// Fields for the other update kinds stay blank.
	assert.Empty(t, row.Get(models.ColUpdateEmail))
	assert.Empty(t, row.Get(models.ColAddr1))
	assert.Empty(t, row.Get(models.ColMessage))
}

func TestContactServiceSubmitAddressStructured(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredContactHeaders()}}
	svc := newTestContactService(store)

	_, err := svc.Submit(context.Background(), testMember(), dto.ContactUpdatePayload{
		UpdateType: models.UpdateTypeAddress,
		Name:       "Aiko Tanaka",
		Addr1:      "12 Dojo Lane",
		Addr2:      "Unit 3",
		Suburb:     "Newtown",
		PostCode:   "2042",
	})
	require.NoError(t, err)

	require.Len(t, store.appendedRows, 1)
	row := store.appendedRows[0]
	assert.Equal(t, "12 Dojo Lane", row.Get(models.ColAddr1))
	assert.Equal(t, "Unit 3", row.Get(models.ColAddr2))
	assert.Equal(t, "Newtown", row.Get(models.ColSuburb))
	assert.Equal(t, "2042", row.Get(models.ColPostCode))
	assert.Empty(t, row.Get(models.ColUpdatePhone))
}

func TestContactServiceSubmitFallbackMessage(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: baseRequestHeaders}}
	svc := newTestContactService(store)

	res, err := svc.Submit(context.Background(), testMember(), dto.ContactUpdatePayload{
		UpdateType: models.UpdateTypeEmail,
		Name:       "Aiko Tanaka",
		Email:      "new-address@example.com",
	})
	require.NoError(t, err)
	assert.False(t, res.Structured)

	require.Len(t, store.appendedRows, 1)
	msg := store.appendedRows[0].Get(models.ColMessage)
	assert.Equal(t, "Contact update | Type: Email | Name: Aiko Tanaka | Email: new-address@example.com", msg)
}

func TestContactServiceSubmitPhoneFallbackMessage(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: baseRequestHeaders}}
	svc := newTestContactService(store)

	_, err := svc.Submit(context.Background(), testMember(), dto.ContactUpdatePayload{
		UpdateType: models.UpdateTypePhone,
		Name:       "Aiko Tanaka",
		Phone:      "0400123456",
	})
	require.NoError(t, err)

	msg := store.appendedRows[0].Get(models.ColMessage)
	assert.Equal(t, "Contact update | Type: Phone number | Name: Aiko Tanaka | Phone: 0400 123 456", msg)
}

func TestContactServiceSubmitValidation(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredContactHeaders()}}
	svc := newTestContactService(store)

	cases := []struct {
		name    string
		payload dto.ContactUpdatePayload
	}{
		{"missing name", dto.ContactUpdatePayload{UpdateType: models.UpdateTypePhone, Phone: "0400123456"}},
		{"bad phone", dto.ContactUpdatePayload{UpdateType: models.UpdateTypePhone, Name: "A", Phone: "123"}},
		{"address missing suburb", dto.ContactUpdatePayload{UpdateType: models.UpdateTypeAddress, Name: "A", Addr1: "x", Addr2: "y", PostCode: "2000"}},
		{"email blank", dto.ContactUpdatePayload{UpdateType: models.UpdateTypeEmail, Name: "A", Email: "  "}},
		{"unknown update type", dto.ContactUpdatePayload{UpdateType: "Fax", Name: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), testMember(), tc.payload)
			var appErr *appErrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
		})
	}
	assert.Empty(t, store.appendedRows)
}

func TestContactServiceSubmitAddressNamesFirstMissingField(t *testing.T) {
	store := &mockRequestStore{table: models.Table{Headers: structuredContactHeaders()}}
	svc := newTestContactService(store)

	// Several fields are blank; the error names the first in form order.
	_, err := svc.Submit(context.Background(), testMember(), dto.ContactUpdatePayload{
		UpdateType: models.UpdateTypeAddress,
		Name:       "Aiko Tanaka",
		Suburb:     "Newtown",
	})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "addr1 must not be empty", appErr.Message)
}
