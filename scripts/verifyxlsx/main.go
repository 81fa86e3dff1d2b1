// Command verifyxlsx checks a generated Excel report for rows that lost
// their method identity and for parameter rows pointing at unknown methods.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	filename := "output/libweb-api.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	fmt.Printf("=== ZERO TOLERANCE CHECK: %s ===\n", filename)

	methods, problems := checkMethods(f)
	problems += checkParams(f, methods)

	if problems > 0 {
		fmt.Printf("\n❌ FAILED: %d problem(s)\n", problems)
		os.Exit(1)
	}
	fmt.Printf("\n✅ PASSED: %d methods verified\n", len(methods))
}

// checkMethods requires every method row to carry a verb, a name and a
// method identifier. It returns the "VERB name" keys it saw.
func checkMethods(f *excelize.File) (map[string]bool, int) {
	rows, err := f.GetRows("Methods")
	if err != nil {
		log.Fatal(err)
	}

	seen := make(map[string]bool)
	problems := 0
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		verb := strings.TrimSpace(row[0])
		if verb == "[CLASS]" {
			continue
		}

		name, method := cell(row, 1), cell(row, 2)
		if verb == "" || name == "" || method == "" {
			fmt.Printf("❌ INCOMPLETE METHOD at row %d: %q\n", i+1, row)
			problems++
			continue
		}
		seen[verb+" "+name] = true
	}
	return seen, problems
}

// checkParams requires every parameter row to reference a listed method
func checkParams(f *excelize.File, methods map[string]bool) int {
	rows, err := f.GetRows("Params")
	if err != nil {
		log.Fatal(err)
	}

	problems := 0
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if key := cell(row, 3); key == "" {
			fmt.Printf("❌ EMPTY KEY at row %d\n", i+1)
			problems++
		}
		if m := cell(row, 1); !methods[m] {
			fmt.Printf("❌ UNKNOWN METHOD at row %d: %q\n", i+1, m)
			problems++
		}
	}
	return problems
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
