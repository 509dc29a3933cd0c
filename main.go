// =============================================================================
// Book Review Stats - Main Entry Point
// =============================================================================
//
// USAGE:
//   bookstats analyze <file>      - Clean the reviews and report purchases per book
//   bookstats inspect <file>      - Describe the columns of a review file
//   bookstats query <file> <sql>  - Run SQL over the cleaned reviews
//   bookstats version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Loading, cleaning, aggregation and reporting
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/bookstats/cmd"
)

func main() {
	cmd.Execute()
}
