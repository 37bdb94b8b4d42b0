package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"frauddash/internal/domain"
)

func TestDatasetFingerprintDeterministic(t *testing.T) {
	a := DatasetFingerprint(dataset(10))
	b := DatasetFingerprint(dataset(10))
	assert.Equal(t, a, b, "same content, same fingerprint")
	assert.Len(t, a, 64)
}

func TestDatasetFingerprintChangesWithContent(t *testing.T) {
	base := dataset(10)
	assert.NotEqual(t, DatasetFingerprint(base), DatasetFingerprint(dataset(11)))

	flipped := dataset(10)
	flipped[3].IsPotentialFraud = true
	assert.NotEqual(t, DatasetFingerprint(base), DatasetFingerprint(flipped))

	relocated := dataset(10)
	relocated[0].Location = "NY"
	assert.NotEqual(t, DatasetFingerprint(base), DatasetFingerprint(relocated))
}

func TestDatasetFingerprintHandlesNaNAmount(t *testing.T) {
	degraded := dataset(3)
	degraded[1].Amount = math.NaN()

	first := DatasetFingerprint(degraded)

	again := dataset(3)
	again[1].Amount = math.NaN()
	assert.Equal(t, first, DatasetFingerprint(again))
	assert.NotEqual(t, DatasetFingerprint(dataset(3)), first)
}

func TestDatasetFingerprintEmpty(t *testing.T) {
	assert.Equal(t, DatasetFingerprint(nil), DatasetFingerprint([]domain.Transaction{}))
}
