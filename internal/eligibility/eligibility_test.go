package eligibility

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradus-nz/gradus/internal/catalog"
)

func TestCheck_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	tables := catalog.Default()
	checker := NewChecker(tables)

	for _, course := range tables.Courses {
		course := course
		t.Run(string(course.Name), func(t *testing.T) {
			t.Parallel()

			at, err := checker.Check(strconv.Itoa(course.Threshold), string(course.Name))
			require.NoError(t, err)
			assert.Equal(t, Result{Kind: Eligible, Course: course.Name, Threshold: course.Threshold}, at)

			below, err := checker.Check(strconv.Itoa(course.Threshold-1), string(course.Name))
			require.NoError(t, err)
			assert.Equal(t, Result{Kind: Ineligible, Course: course.Name, Threshold: course.Threshold, Shortfall: 1}, below)
		})
	}
}

func TestCheck_InvalidInput(t *testing.T) {
	t.Parallel()

	checker := NewChecker(catalog.Default())

	for _, raw := range []string{"abc", "", "   ", "12.5", "1,000", "3e2", "99999999999999999999999"} {
		res, err := checker.Check(raw, "Science")
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, InvalidInput, res.Kind, "raw=%q", raw)
		assert.Equal(t, "Enter a whole number.", res.Message())
	}
}

func TestCheck_AcceptsAnyInteger(t *testing.T) {
	t.Parallel()

	checker := NewChecker(catalog.Default())

	res, err := checker.Check(" -20 ", "Commerce")
	require.NoError(t, err)
	assert.Equal(t, Ineligible, res.Kind)
	assert.Equal(t, 230, res.Shortfall)

	res, err = checker.Check("100000", "commerce")
	require.NoError(t, err)
	assert.Equal(t, Eligible, res.Kind)
	assert.Equal(t, catalog.Commerce, res.Course)

	res, err = checker.Check(strconv.Itoa(math.MinInt), "Science")
	require.NoError(t, err)
	assert.Equal(t, InvalidInput, res.Kind)
	assert.Equal(t, "Enter a whole number.", res.Message())

	lowest := 280 - math.MaxInt
	res, err = checker.Check(strconv.Itoa(lowest), "Science")
	require.NoError(t, err)
	assert.Equal(t, Ineligible, res.Kind)
	assert.Equal(t, math.MaxInt, res.Shortfall)

	res, err = checker.Check(strconv.Itoa(lowest-1), "Science")
	require.NoError(t, err)
	assert.Equal(t, InvalidInput, res.Kind)

	res, err = checker.Check(strconv.Itoa(math.MaxInt), "Engineering")
	require.NoError(t, err)
	assert.Equal(t, Eligible, res.Kind)
}

func TestCheck_UnknownCourse(t *testing.T) {
	t.Parallel()

	_, err := NewChecker(catalog.Default()).Check("300", "Medicine")
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestResult_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "✔ Enough for Engineering (need 260).", Verdict(300, catalog.Engineering, 260).Message())
	assert.Equal(t, "✘ Need 60 more for Engineering.", Verdict(200, catalog.Engineering, 260).Message())
}
