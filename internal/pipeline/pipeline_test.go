package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/vcindex/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, catalog *model.Catalog) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, catalog *model.Catalog) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, catalog)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
	if p.logger == nil {
		t.Error("expected default logger")
	}
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "one"})
	p.AddSteps(&mockStep{name: "two"}, &mockStep{name: "three"})

	if p.StepCount() != 3 {
		t.Fatalf("expected 3 steps, got %d", p.StepCount())
	}
	names := p.StepNames()
	for i, want := range []string{"one", "two", "three"} {
		if names[i] != want {
			t.Errorf("StepNames()[%d] = %q, want %q", i, names[i], want)
		}
	}
}

// TestPipelineExecute tests step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		step := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, c *model.Catalog) error {
					order = append(order, name)
					c.APIPages = append(c.APIPages, name)
					return nil
				},
			}
		}

		p := New()
		p.AddSteps(step("a"), step("b"), step("c"))

		catalog := model.NewCatalog(".")
		if err := p.Execute(context.Background(), catalog); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(order) != 3 || order[0] != "a" || order[2] != "c" {
			t.Errorf("execution order = %v", order)
		}
		if len(catalog.APIPages) != 3 {
			t.Errorf("catalog not shared between steps: %v", catalog.APIPages)
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		errStep := errors.New("step failed")
		first := &mockStep{name: "first"}
		failing := &mockStep{
			name: "failing",
			doFunc: func(context.Context, *model.Catalog) error {
				return errStep
			},
		}
		last := &mockStep{name: "last"}

		p := New()
		p.AddSteps(first, failing, last)

		err := p.Execute(context.Background(), model.NewCatalog("."))
		if !errors.Is(err, errStep) {
			t.Fatalf("Execute() error = %v, want %v", err, errStep)
		}
		if first.callCount != 1 || failing.callCount != 1 {
			t.Error("expected first and failing steps to run once")
		}
		if last.callCount != 0 {
			t.Error("expected last step to be skipped after failure")
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "never"}
		p := New()
		p.AddStep(step)

		if err := p.Execute(ctx, model.NewCatalog(".")); !errors.Is(err, context.Canceled) {
			t.Errorf("Execute() error = %v, want context.Canceled", err)
		}
		if step.callCount != 0 {
			t.Error("expected step not to run")
		}
	})
}
