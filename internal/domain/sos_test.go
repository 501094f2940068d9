package domain

import (
	"strings"
	"testing"
)

func TestComposeSOSMessage(t *testing.T) {
	coords := []Coordinate{
		{Latitude: 33.4484, Longitude: -112.074},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 0, Longitude: 0},
		{Latitude: 51.5, Longitude: -0.1276},
	}

	for _, c := range coords {
		msg := ComposeSOSMessage(c)

		if n := strings.Count(msg, "https://"); n != 1 {
			t.Fatalf("message for %v has %d urls, want 1: %q", c, n, msg)
		}

		want := "https://maps.google.com/?q=" + c.String()
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q does not contain %q", msg, want)
		}
	}
}

func TestCoordinateString(t *testing.T) {
	c := Coordinate{Latitude: 12.9716, Longitude: 77.5946}
	if got := c.String(); got != "12.9716,77.5946" {
		t.Fatalf("String() = %q", got)
	}
	if got := c.MapURL(); got != "https://maps.google.com/?q=12.9716,77.5946" {
		t.Fatalf("MapURL() = %q", got)
	}
	if got := c.Cell(); got != "12.972,77.595" {
		t.Fatalf("Cell() = %q", got)
	}
}

func TestCoordinateValidate(t *testing.T) {
	if err := (Coordinate{Latitude: 91}).Validate(); err == nil {
		t.Fatalf("expected latitude range error")
	}
	if err := (Coordinate{Longitude: -181}).Validate(); err == nil {
		t.Fatalf("expected longitude range error")
	}
	if err := (Coordinate{Latitude: 45, Longitude: 9}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
