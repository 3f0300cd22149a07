// Package formpost lets a front-end form edit the title and body of a record.
//
// Two virtual form fields (by default "form_post_title" and
// "form_post_content") are advertised in a field group. When a form is
// submitted, the values of those fields are moved out of the submission and
// written to the record's title and body in one partial update; the rest of
// the submission continues to the generic metadata path. When the edit form
// is loaded, the two fields are pre-populated from the record.
//
// Records live in a directory of Markdown files (title in the frontmatter,
// body as content, optional git revisions) or in a PostgreSQL table.
//
// Usage:
//
//	p, err := formpost.New(ctx,
//		formpost.WithPath("./records"),
//		formpost.WithRegistry(formpost.NewRegistry()),
//		formpost.WithLogger(logger),
//	)
//
//	res, err := p.Submit(ctx, 42, formpost.NewSubmission(
//		formpost.Field{Key: "field_5232d86ba9246title", Value: "Hello"},
//		formpost.Field{Key: "color", Value: "blue"},
//	))
package formpost
