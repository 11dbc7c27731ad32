package repository

import (
	"context"
	"errors"
	"testing"

	"pocketmeadery/models"
)

func TestIngredientCreateAndList(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	ingredients := NewIngredients(database)
	ingredients.now = newFakeClock(1_000).now
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Recipe")

	honeyType := models.IngredientHoney
	amount := 8.0
	unit := "lb"
	honey, err := ingredients.Create(ctx, CreateIngredientInput{
		BatchID:        batch.ID,
		Name:           "Wildflower honey",
		AmountValue:    &amount,
		AmountUnit:     &unit,
		IngredientType: &honeyType,
	})
	if err != nil {
		t.Fatalf("create honey: %v", err)
	}
	if honey.IngredientType == nil || *honey.IngredientType != models.IngredientHoney {
		t.Fatalf("ingredient type = %v, want HONEY", honey.IngredientType)
	}

	yeast, err := ingredients.Create(ctx, CreateIngredientInput{BatchID: batch.ID, Name: "71B"})
	if err != nil {
		t.Fatalf("create yeast: %v", err)
	}

	listed, err := ingredients.ListByBatch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("list ingredients: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ingredient count = %d, want 2", len(listed))
	}
	if listed[0].ID != honey.ID || listed[1].ID != yeast.ID {
		t.Fatal("expected creation order")
	}
}

func TestIngredientValidation(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	ingredients := NewIngredients(database)
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Validated")

	if _, err := ingredients.Create(ctx, CreateIngredientInput{BatchID: batch.ID, Name: " "}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty name error = %v, want ErrInvalid", err)
	}

	badType := models.IngredientType("SPICE")
	if _, err := ingredients.Create(ctx, CreateIngredientInput{
		BatchID:        batch.ID,
		Name:           "Cinnamon",
		IngredientType: &badType,
	}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("bad type error = %v, want ErrInvalid", err)
	}

	if _, err := ingredients.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id error = %v, want ErrNotFound", err)
	}
}

func TestIngredientUpdateAndDelete(t *testing.T) {
	t.Parallel()

	database := testDB(t)
	batches := NewBatches(database)
	ingredients := NewIngredients(database)
	ingredients.now = newFakeClock(1_000).now
	ctx := context.Background()

	batch := createTestBatch(t, batches, "Editable")

	notes := "raw"
	ingredient, err := ingredients.Create(ctx, CreateIngredientInput{
		BatchID: batch.ID,
		Name:    "Orange zest",
		Notes:   &notes,
	})
	if err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	updated, err := ingredients.Update(ctx, ingredient.ID, IngredientPatch{
		Name:  Set("Bitter orange zest"),
		Notes: Null[string](),
	})
	if err != nil {
		t.Fatalf("update ingredient: %v", err)
	}
	if updated.Name != "Bitter orange zest" {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.Notes != nil {
		t.Fatal("notes must be cleared by explicit null")
	}
	if updated.UpdatedAt <= ingredient.UpdatedAt {
		t.Fatal("update must advance updated_at")
	}

	if err := ingredients.Delete(ctx, ingredient.ID); err != nil {
		t.Fatalf("delete ingredient: %v", err)
	}
	if _, err := ingredients.Get(ctx, ingredient.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete error = %v, want ErrNotFound", err)
	}
}
