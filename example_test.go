package formpost_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/formpost"
	"github.com/aretw0/formpost/pkg/adapters/fs"
	"github.com/aretw0/formpost/pkg/fieldgroup"
)

// Example_submit maps the title field of a submission onto a record.
func Example_submit() {
	dir, err := os.MkdirTemp("", "formpost-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()

	// An existing record.
	store := fs.NewStore(fs.Config{Path: dir})
	if err := store.Create(ctx, formpost.Record{ID: 42, Type: "post", Title: "Draft", Body: "Body"}); err != nil {
		log.Fatal(err)
	}

	p, err := formpost.New(ctx,
		formpost.WithStore(store),
		formpost.WithRegistry(formpost.NewRegistry()),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	res, err := p.Submit(ctx, 42, formpost.NewSubmission(
		formpost.Field{Key: fieldgroup.TitleFieldKey, Value: "Hello"},
		formpost.Field{Key: "f2", Value: "World"},
	))
	if err != nil {
		log.Fatal(err)
	}

	r, err := store.Get(ctx, 42)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("title:", r.Title)
	fmt.Println("residual:", res.Residual.Keys())

	values, err := p.LoadValues(ctx, "42")
	if err != nil {
		log.Fatal(err)
	}
	for _, v := range values {
		fmt.Printf("%s=%q\n", v.Key, v.Value)
	}

	// Output:
	// title: Hello
	// residual: [f2]
	// form_post_title="Hello"
	// form_post_content="Body"
}

// Example_inert shows the plugin without a field-definition registry.
func Example_inert() {
	p, err := formpost.New(context.Background(), formpost.WithStore(fs.NewStore(fs.Config{Path: os.TempDir()})))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("active:", p.Active())

	// Output:
	// active: false
}
