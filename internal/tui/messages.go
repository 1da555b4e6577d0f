package tui

import "github.com/Veraticus/contas-em-dia/internal/model"

// toggledMsg reports the result of flipping a bill's paid flag.
type toggledMsg struct {
	err error
	txn model.Transaction
}

// deletedMsg reports the result of a delete.
type deletedMsg struct {
	err         error
	description string
}
