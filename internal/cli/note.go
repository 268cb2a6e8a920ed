package cli

import "fmt"

type NoteCmd struct {
	Content string `arg:"" optional:"" help:"Note text. Omit to list existing notes."`
}

func (c *NoteCmd) Run(ctx *Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}

	if c.Content == "" {
		doc, err := ctx.Store.Snapshot()
		if err != nil {
			return err
		}
		if len(doc.UserNotes) == 0 {
			fmt.Println("No notes yet.")
			return nil
		}
		for _, note := range doc.UserNotes {
			fmt.Printf("%s  %s\n", formatTimestamp(note.Timestamp), note.Content)
		}
		return nil
	}

	note, err := ctx.Recorder.AddNote(c.Content)
	if err != nil {
		return err
	}
	fmt.Printf("Saved note %s\n", note.ID)
	return nil
}
