package command_test

import (
	"testing"

	"github.com/duiproject/duitrack/internal/command"
)

func TestNewRegistry_Builtins(t *testing.T) {
	r := command.NewRegistry()
	if r.Len() != len(command.Builtins()) {
		t.Fatalf("Len = %d, want %d", r.Len(), len(command.Builtins()))
	}
	c, ok := r.Get("dials.find_spots")
	if !ok {
		t.Fatal("dials.find_spots not registered")
	}
	rec := c.Record()
	if rec.Endpoint != "/v1/commands/dials.find_spots" {
		t.Errorf("endpoint = %q", rec.Endpoint)
	}
	if rec.Description != "" {
		t.Errorf("unexpected description %q", rec.Description)
	}
}

func TestNewRegistry_Extras(t *testing.T) {
	r := command.NewRegistry(command.Command{Name: "xia2.multiplex", Description: "Combine sweeps"})
	c, ok := r.Get("xia2.multiplex")
	if !ok {
		t.Fatal("extra command not registered")
	}
	if c.Record().Description != "Combine sweeps" {
		t.Errorf("record = %+v", c.Record())
	}
}

func TestRegistry_Endpoints(t *testing.T) {
	r := command.NewRegistry()
	eps := r.Endpoints()
	if got := eps["mask"]; got != "/v1/commands/mask" {
		t.Errorf("mask endpoint = %q", got)
	}
	if len(eps) != r.Len() {
		t.Errorf("endpoints size = %d, want %d", len(eps), r.Len())
	}
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on duplicate name")
		}
	}()
	r := command.NewRegistry()
	r.Register(command.Command{Name: "export"})
}
