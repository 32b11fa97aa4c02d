package openapisource

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/contact.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestFromDocumentMapsProperties(t *testing.T) {
	inputs, err := FromDocument(context.Background(), loadFixture(t), "createContact")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}

	want := []form.Input{
		{Label: "Age", Slug: "age", Attributes: model.Attributes{"type": "number", "min": "18", "max": "120", "step": "1"}},
		{Label: "Email", Slug: "email", Attributes: model.Attributes{"type": "email", "required": true}},
		{Label: "Full Name", Slug: "full_name", Attributes: model.Attributes{
			"type": "text", "maxlength": "80", "pattern": "^[A-Za-z ]+$", "placeholder": "Your name", "required": true,
		}},
		{Label: "Newsletter", Slug: "newsletter", Attributes: model.Attributes{"type": "checkbox", "value": "1"}},
		{Label: "Topic", Slug: "topic", Attributes: model.Attributes{
			"type":     "select",
			"selected": "support",
			"options": model.Options{
				{Value: "sales", Label: "sales"},
				{Value: "support", Label: "support"},
				{Value: "billing", Label: "billing"},
			},
		}},
		{Label: "Home page", Slug: "website", Attributes: model.Attributes{"type": "url"}},
	}
	if diff := cmp.Diff(want, inputs); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAddressesOperationsWithoutID(t *testing.T) {
	_, err := Find(context.Background(), loadFixture(t), "delete:/contacts/{id}")
	if !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
}

func TestFromDocumentUnknownOperation(t *testing.T) {
	_, err := FromDocument(context.Background(), loadFixture(t), "missing")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestFromDocumentFeedsForm(t *testing.T) {
	inputs, err := FromDocument(context.Background(), loadFixture(t), "createContact")
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	f := form.New("/contacts", nil)
	if err := f.AddInputs(inputs); err != nil {
		t.Fatalf("add inputs: %v", err)
	}
	spec, ok := f.Input("topic")
	if !ok {
		t.Fatalf("topic not added")
	}
	if !spec.Type.IsSelect() || spec.Selected != "support" || len(spec.Options) != 3 {
		t.Fatalf("unexpected topic spec: %+v", spec)
	}
}

func TestFindHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Find(ctx, loadFixture(t), "createContact"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
