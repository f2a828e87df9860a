/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sniff_demo.go
Description: Demo of the sniffer library. Detects the dialect of a few small samples
and shows how the pattern score separates plausible from implausible dialects.
*/

package main

import (
	"context"
	"fmt"
	"log"

	sniffer "github.com/kleascm/dialect-sniffer"
	"github.com/kleascm/dialect-sniffer/pkg/abstraction"
	"github.com/kleascm/dialect-sniffer/pkg/dialect"
	"github.com/kleascm/dialect-sniffer/pkg/pattern"
)

var samples = map[string]string{
	"comma":     "name,age,city\nAlice,30,Paris\nBob,25,\"New York, NY\"\n",
	"semicolon": "id;price;note\n1;3,50;\"a;b\"\n2;4,10;plain\n",
	"tab":       "x\ty\tz\n1\t2\t3\n4\t5\t6\n",
	"escaped":   "a|b\\|c|d\ne|f|g\n",
}

func main() {
	ctx := context.Background()

	for _, name := range []string{"comma", "semicolon", "tab", "escaped"} {
		text := samples[name]
		result, err := sniffer.Sniff(ctx, text, sniffer.Options{})
		if err != nil {
			log.Fatalf("sniff %s: %v", name, err)
		}
		fmt.Printf("%-10s %s (score %.4f, %d candidates)\n",
			name, result.Best.Dialect, result.Best.Score, result.Candidates)
	}

	fmt.Println()
	text := samples["comma"]
	for _, d := range []dialect.Dialect{
		dialect.New(',', '"', dialect.None),
		dialect.New(',', dialect.None, dialect.None),
		dialect.New(' ', '"', dialect.None),
	} {
		fmt.Printf("%-45s %-28s %.4f\n", d, abstraction.Make(text, d), pattern.Score(text, d, pattern.DefaultEps))
	}
}
