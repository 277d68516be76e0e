package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	list := StringList{"memories/u1/a.jpg", "memories/u1/b.mp3"}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)

	// NULL column scans to an empty list
	var fromNull StringList
	require.NoError(t, fromNull.Scan(nil))
	assert.Empty(t, fromNull)
}

func TestBoolMapScan(t *testing.T) {
	var perms BoolMap
	require.NoError(t, perms.Scan([]byte(`{"viewWishes":true,"viewDocuments":false}`)))
	assert.True(t, perms[PermViewWishes])
	assert.False(t, perms[PermViewDocuments])
}

func TestPledgePayloadVersionSurvivesStorage(t *testing.T) {
	payload := PledgePayload{
		Version:       PledgePayloadVersion,
		FullName:      "Asha Verma",
		Email:         "asha@example.com",
		ContactNumber: "9876543210",
	}

	value, err := payload.Value()
	require.NoError(t, err)

	var scanned PledgePayload
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, PledgePayloadVersion, scanned.Version)
	assert.Equal(t, "Asha Verma", scanned.FullName)
}

func TestPlanCatalog(t *testing.T) {
	basic, err := PlanByID(PlanBasic)
	require.NoError(t, err)
	assert.Zero(t, basic.YearlyAmount)
	assert.Equal(t, 1, basic.NomineeLimit)

	premium, err := PlanByID(PlanPremium)
	require.NoError(t, err)
	assert.Equal(t, -1, premium.LetterLimit, "premium letters are unlimited")

	_, err = PlanByID("platinum")
	assert.Error(t, err)

	// Catalog stays cheapest-first for the pricing page
	for i := 1; i < len(Plans); i++ {
		assert.GreaterOrEqual(t, Plans[i].YearlyAmount, Plans[i-1].YearlyAmount)
	}
}

func TestPaymentFormatAmount(t *testing.T) {
	pay := &Payment{Amount: 2999 * 100}
	assert.Equal(t, "₹2999/year", pay.FormatAmount())
}
