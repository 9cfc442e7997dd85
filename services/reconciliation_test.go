package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeReconciliationStore struct {
	refs        []DealCommissionRef
	commissions map[primitive.ObjectID]bool
}

func (s *fakeReconciliationStore) ListDealCommissionRefs(ctx context.Context) ([]DealCommissionRef, error) {
	return s.refs, nil
}

func (s *fakeReconciliationStore) CommissionExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.commissions[id], nil
}

func TestCommissionReport(t *testing.T) {
	linked := primitive.NewObjectID()
	dangling := primitive.NewObjectID()

	healthy := DealCommissionRef{DealID: primitive.NewObjectID(), Client: primitive.NewObjectID(), ContractStage: "cm_request", Commission: &linked}
	unset := DealCommissionRef{DealID: primitive.NewObjectID(), Client: primitive.NewObjectID(), ContractStage: "cm_approved"}
	broken := DealCommissionRef{DealID: primitive.NewObjectID(), Client: primitive.NewObjectID(), ContractStage: "cm_request", Commission: &dangling}

	store := &fakeReconciliationStore{
		refs:        []DealCommissionRef{healthy, unset, broken},
		commissions: map[primitive.ObjectID]bool{linked: true},
	}

	report, err := NewReconciliationService(store).CommissionReport(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 3, report.DealsTotal)
	require.Len(t, report.Gaps, 2)

	byDeal := make(map[primitive.ObjectID]CommissionGap)
	for _, gap := range report.Gaps {
		byDeal[gap.DealID] = gap
	}
	assert.Equal(t, "unset", byDeal[unset.DealID].Reason)
	assert.Equal(t, "dangling", byDeal[broken.DealID].Reason)
	assert.NotContains(t, byDeal, healthy.DealID)
}

func TestCommissionReportEmpty(t *testing.T) {
	store := &fakeReconciliationStore{}
	report, err := NewReconciliationService(store).CommissionReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.DealsTotal)
	assert.Empty(t, report.Gaps)
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{AuthorizationError("forbidden"), http.StatusForbidden},
		{ConflictError("duplicate"), http.StatusConflict},
		{StoreError("db down", assert.AnError), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	wrapped := StoreError("saving", assert.AnError)
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, KindStore, KindOf(wrapped))
}
