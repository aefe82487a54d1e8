package command

import "github.com/iw2rmb/inkwell/document"

// Result is the outcome of a command.
type Result struct {
	Doc    document.Document
	Cursor document.Pos
	// Changed is false when the command was a no-op at this position. Doc is
	// then the input document.
	Changed bool
}

func noop(doc document.Document, at document.Pos) Result {
	return Result{Doc: doc, Cursor: at}
}

func changed(blocks []document.Block, at document.Pos) Result {
	doc := document.Normalize(document.Document{Blocks: blocks})
	return Result{Doc: doc, Cursor: document.ClampPos(doc, at), Changed: true}
}

// prepare normalizes doc and clamps at into it.
func prepare(doc document.Document, at document.Pos) (document.Document, document.Pos) {
	doc = document.Normalize(doc)
	return doc, document.ClampPos(doc, at)
}

// replaceBlocks returns blocks with blocks[i:j] replaced by repl.
func replaceBlocks(blocks []document.Block, i, j int, repl ...document.Block) []document.Block {
	out := make([]document.Block, 0, len(blocks)-(j-i)+len(repl))
	out = append(out, blocks[:i]...)
	out = append(out, repl...)
	out = append(out, blocks[j:]...)
	return out
}
