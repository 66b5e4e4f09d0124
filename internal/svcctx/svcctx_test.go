package svcctx

import (
	"context"
	"testing"

	"github.com/monkeytranslate/monkeytranslate/internal/edit"
	"github.com/monkeytranslate/monkeytranslate/internal/store"
)

func TestServicesRoundTrip(t *testing.T) {
	s := &Services{
		Store: store.NewMemoryStore(),
		Edits: edit.NewRegistry(),
	}
	ctx := WithServices(context.Background(), s)

	if got := ServicesFrom(ctx); got != s {
		t.Error("ServicesFrom did not return the attached services")
	}
	if StoreFrom(ctx) != s.Store {
		t.Error("StoreFrom mismatch")
	}
	if EditsFrom(ctx) != s.Edits {
		t.Error("EditsFrom mismatch")
	}
}

func TestAccessorsOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	if ServicesFrom(ctx) != nil {
		t.Error("ServicesFrom on empty context")
	}
	if StoreFrom(ctx) != nil {
		t.Error("StoreFrom on empty context")
	}
	if OrchestratorFrom(ctx) != nil {
		t.Error("OrchestratorFrom on empty context")
	}
	if EditsFrom(ctx) != nil {
		t.Error("EditsFrom on empty context")
	}
	if ProvidersFrom(ctx) != nil {
		t.Error("ProvidersFrom on empty context")
	}
	if ConfigFrom(ctx) != nil {
		t.Error("ConfigFrom on empty context")
	}
	if LoggerFrom(ctx) != nil {
		t.Error("LoggerFrom on empty context")
	}
	if HomeFrom(ctx) != nil {
		t.Error("HomeFrom on empty context")
	}
}
