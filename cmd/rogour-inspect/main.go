// Command rogour-inspect is a diagnostic tool: given a 5-character board
// code or a dense index, it prints the decoded board and, if a database
// file is supplied, the stored win probability for it. It is not a player.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/msheby/rogour/internal/codec"
	"github.com/msheby/rogour/internal/probdb"
	"github.com/msheby/rogour/internal/rules"
)

func main() {
	code := flag.String("code", "", "5-character Z85 board code to decode")
	index := flag.Int64("index", -1, "dense position index to decode (alternative to -code)")
	dbPath := flag.String("db", "", "optional probability database to look up the position in")
	header := flag.Bool("header", false, "the database at -db uses the ROGOURDB headered format")
	flag.Parse()

	b, idx, err := decode(*code, *index)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}

	fmt.Println(rules.DebugString(b))
	fmt.Printf("index: %d\n", idx)
	if c, err := codec.BoardToCode(b); err == nil {
		fmt.Printf("code:  %s\n", c)
	}

	if *dbPath == "" {
		return
	}

	var db *probdb.ProbDb
	if *header {
		db, err = probdb.LoadAuto(*dbPath)
	} else {
		db, err = probdb.Load(*dbPath)
	}
	if err != nil {
		log.Fatalf("load database %s: %v", *dbPath, err)
	}

	p, known, err := db.AGet(b)
	if err != nil {
		log.Fatalf("lookup: %v", err)
	}
	if !known {
		fmt.Println("probability: unknown (not yet solved)")
		return
	}
	fmt.Printf("probability: %.6f (Green wins)\n", p)
}

func decode(code string, index int64) (rules.Board, int64, error) {
	switch {
	case code != "":
		b, err := codec.CodeToBoard(code)
		if err != nil {
			return rules.Board{}, 0, err
		}
		idx, err := codec.BoardToIndex(b)
		if err != nil {
			return rules.Board{}, 0, err
		}
		return b, idx, nil
	case index >= 0:
		b, err := codec.IndexToBoard(index)
		if err != nil {
			return rules.Board{}, 0, err
		}
		return b, index, nil
	default:
		return rules.Board{}, 0, fmt.Errorf("exactly one of -code or -index must be given")
	}
}
