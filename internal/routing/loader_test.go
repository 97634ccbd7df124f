package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripTravelSecondsByLineType(t *testing.T) {
	cases := []struct {
		lineType string
		want     int
	}{
		{"tram", 120},
		{"busway", 120},
		{"train", 120},
		{"bus", 180},
		{"", 180},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tripTravelSeconds(tc.lineType), "line type %q", tc.lineType)
	}
}

func TestFareCentsForLineType(t *testing.T) {
	cases := []struct {
		lineType string
		want     int
	}{
		{"tram", 800},
		{"busway", 800},
		{"train", 800},
		{"bus", 500},
		{"", 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fareCentsForLineType(tc.lineType), "line type %q", tc.lineType)
	}
}
