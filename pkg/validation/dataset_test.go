package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaxon/nc-tech-test/internal/testutil"
	"github.com/osaxon/nc-tech-test/pkg/validation"
)

func TestValidateDataset_Seed(t *testing.T) {
	report, err := validation.ValidateDataset(testutil.CardsJSON(), testutil.TemplatesJSON())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Cards)
	assert.Equal(t, 6, report.Templates)
	assert.True(t, report.Result.Valid, report.Result.Summary())
}

func TestValidateDataset_Problems(t *testing.T) {
	cards := `[
  {"id":"card001","title":"a","template_id":"t","sizes":[],"basePrice":1,"pages":[{"title":"Front","template":"template001"}]},
  {"id":"card001","title":"b","template_id":"t","sizes":[],"basePrice":1,"pages":[{"title":"Front","template":"template001"}]},
  {"id":"card003","title":"c","template_id":"t","sizes":[],"basePrice":1,"pages":[{"title":"Front","template":"missing"}]},
  {"id":"bad","title":"d","template_id":"t","sizes":[],"basePrice":1,"pages":[{"title":"Front","template":"template001"}]}
]`

	report, err := validation.ValidateDataset([]byte(cards), testutil.TemplatesJSON())
	require.NoError(t, err)
	require.False(t, report.Result.Valid)

	codes := map[string]string{}
	for _, e := range report.Result.Errors {
		codes[e.Field] = e.Code
	}
	assert.Equal(t, validation.ErrCodeDuplicate, codes["1.id"])
	assert.Equal(t, validation.ErrCodeReference, codes["2.pages.0.template"])
	assert.Equal(t, validation.ErrCodeSchema, codes["3.id"])
}

func TestValidateDataset_Malformed(t *testing.T) {
	_, err := validation.ValidateDataset([]byte(`{"not":"a list"}`), testutil.TemplatesJSON())
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidJSON))

	_, err = validation.ValidateDataset(testutil.CardsJSON(), []byte(`nope`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidJSON))
}
