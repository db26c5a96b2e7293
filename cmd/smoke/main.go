package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"personal-notes-be/pkg/client"
	"personal-notes-be/pkg/notefilter"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Walks the main API flow against a running server using the client SDK.
// SMOKE_BASE_URL defaults to the local dev server; credentials come from
// SMOKE_USERNAME and SMOKE_PASSWORD.
func main() {
	baseURL := envOr("SMOKE_BASE_URL", "http://localhost:3000/api")
	username := envOr("SMOKE_USERNAME", "user")
	password := os.Getenv("SMOKE_PASSWORD")

	log, _ := zap.NewDevelopment()
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(baseURL, client.WithLogger(log))
	session := client.NewSession(c, func(v client.View) {
		color.Blue("→ navigate: %s", v)
	})

	color.Cyan("🚀 Starting notes API smoke test against %s\n", baseURL)

	color.Yellow("\n1. Login as '%s'", username)
	if err := session.Login(ctx, username, password); err != nil {
		fail("login", err)
	}
	user := session.CurrentUser()
	color.Green("Signed in as %s (%s)", user.Username, user.Role)

	color.Yellow("\n2. List categories")
	categories, err := c.ListCategories(ctx)
	if err != nil {
		fail("list categories", err)
	}
	categoryIDs := make([]string, 0, len(categories))
	for _, cat := range categories {
		categoryIDs = append(categoryIDs, cat.ID)
	}
	prettyPrint(categories)

	color.Yellow("\n3. Create note")
	note, err := c.CreateNote(ctx, client.NoteInput{
		Title:        "Smoke test " + time.Now().Format(time.Kitchen),
		Content:      "Created by the smoke command",
		EventDate:    time.Now(),
		AuthorID:     user.ID,
		Province:     "DKI Jakarta",
		CategoryIDs:  firstN(categoryIDs, 1),
		Tags:         []string{"smoke"},
		PhoneNumbers: []string{"+62 21 555 0100"},
	})
	if err != nil {
		fail("create note", err)
	}
	color.Green("Created note %s", note.ID)

	color.Yellow("\n4. Rate and comment")
	if _, err := c.SetRating(ctx, note.ID, 5); err != nil {
		fail("set rating", err)
	}
	if _, err := c.CreateComment(ctx, note.ID, client.CommentInput{Content: "Looks good", AuthorID: user.ID}); err != nil {
		fail("create comment", err)
	}

	color.Yellow("\n5. Filter notes locally by tag")
	notes, err := c.ListNotes(ctx)
	if err != nil {
		fail("list notes", err)
	}
	filtered := client.FilterNotes(notes, notefilter.Criteria{Tags: []string{"smoke"}})
	color.Green("%d of %d notes tagged 'smoke'", len(filtered), len(notes))

	color.Yellow("\n6. Delete note and logout")
	if err := c.DeleteNote(ctx, note.ID); err != nil {
		fail("delete note", err)
	}
	if err := session.Logout(ctx); err != nil {
		fail("logout", err)
	}

	color.Green("\n✅ Smoke test passed")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		return items
	}
	return items[:n]
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func fail(step string, err error) {
	color.Red("Failed at %s: %v", step, err)
	os.Exit(1)
}
