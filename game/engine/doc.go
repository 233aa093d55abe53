// Package engine provides the core game logic for Klondike solitaire.
//
// The engine package implements:
//   - The Pile contract and its four variants (Stock, Waste, Foundation, Tableau)
//   - Dealing from the stock and recycling the waste
//   - Single-card transfers with rollback, and whole-run tableau moves
//   - Possible-move enumeration and the win condition
//   - Board rendering, JSON snapshots and move history
//
// Core Types:
//
// Game owns every pile for one deal and implements Engine. Cards move between
// piles by value: a pile that rejects a Push hands the card back, and the
// caller returns it to the pile it came from. GameConfig selects the deal size
// and message templates, loaded from JSON or YAML by the config package.
//
// Usage:
//
//	game, err := engine.New(engine.DealThree)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.Deal()
//	if !game.WasteToTableau(4) {
//		fmt.Println(game.Message())
//	}
//	fmt.Print(game.Render())
//
// Move operations never return errors. Illegal requests, including out of
// range tableau numbers and empty sources, report false and leave the board
// exactly as it was.
package engine
