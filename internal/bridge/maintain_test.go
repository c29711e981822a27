package bridge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRecordInspection(t *testing.T) {
	bridges := threeBridges()

	n := RecordInspection(bridges, []int{1}, "09/15/2018", 71.9)
	assert.Equal(t, 1, n)

	want := threeBridges()
	want[0].LastInspected = "09/15/2018"
	want[0].BCIHistory = []float64{71.9, 72.3, 69.5, 70.0, 70.3, 70.5, 70.7, 72.9}

	if diff := cmp.Diff(want, bridges); diff != "" {
		t.Errorf("RecordInspection mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordInspection_UnknownIDs(t *testing.T) {
	bridges := threeBridges()
	assert.Equal(t, 0, RecordInspection(bridges, []int{8, 9}, "09/15/2018", 71.9))
	assert.Empty(t, cmp.Diff(threeBridges(), bridges))
}

func TestRecordInspection_DuplicateIDs(t *testing.T) {
	bridges := threeBridges()
	assert.Equal(t, 1, RecordInspection(bridges, []int{2, 2}, "09/15/2018", 71.9))
	assert.Equal(t, append([]float64{71.9}, threeBridges()[1].BCIHistory...), bridges[1].BCIHistory)
}

func TestRehabYear(t *testing.T) {
	tests := []struct {
		given    string
		expected string
	}{
		{given: "09/15/2023", expected: "2023"},
		{given: "2019", expected: "2019"},
		{given: "", expected: ""},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, RehabYear(test.given))
	}
}

func TestRecordRehab(t *testing.T) {
	tests := []struct {
		major     bool
		wantMajor string
		wantMinor string
	}{
		{major: false, wantMajor: "2014", wantMinor: "2023"},
		{major: true, wantMajor: "2023", wantMinor: "2009"},
	}

	for _, test := range tests {
		bridges := threeBridges()
		assert.True(t, RecordRehab(bridges, 1, "09/15/2023", test.major))
		assert.Equal(t, test.wantMajor, bridges[0].LastMajorRehab)
		assert.Equal(t, test.wantMinor, bridges[0].LastMinorRehab)
	}
}

func TestRecordRehab_UnknownID(t *testing.T) {
	bridges := threeBridges()
	assert.False(t, RecordRehab(bridges, 42, "09/15/2023", true))
	assert.Empty(t, cmp.Diff(threeBridges(), bridges))
}
