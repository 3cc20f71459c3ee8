// Package engine provides the rules and interaction core of the solitaire game.
//
// The engine package implements:
//   - The board data model: deck, waste, seven tableau lanes, four foundations
//   - Move legality for lanes (descending, alternating color) and
//     foundations (ascending, same suit)
//   - Deck dealing, drawing to the waste and recycling the waste
//   - Hit testing from screen coordinates to logical zones
//   - The pick-up/drag/drop pointer state machine
//
// Core Types:
//
// Board owns every card container and validates moves before applying them.
// Zone is the closed set Deck | Waste | Lane(1..7) | Foundation(1..4) | None.
// Layout is the table geometry shared by hit testing and card placement.
// Controller consumes one PointerSample per frame and drives the Board,
// keeping the held card and its origin.
//
// Usage:
//
//	board := engine.NewBoard(engine.DefaultLayout())
//	board.InitializeDeck()
//	board.InitializePlayfield()
//
//	ctrl := engine.NewController(board)
//	for each frame {
//		outcome := ctrl.Update(samplePointer())
//		render(board.Snapshot(ctrl.Hand()))
//	}
//
// Rules:
//
// Every card lives in exactly one container, or in the controller's hand,
// at all times; rejected placements put the card back where it was lifted
// from. Drawing from an empty deck and recycling a non-empty deck are
// silent no-ops. Dealing from a short deck panics.
package engine
