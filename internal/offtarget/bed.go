package offtarget

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vertgenlab/gonomics/bed"
)

// ReadTargets reads the intervals of a BED file and returns the locus bedtools getfasta
// names each of them by (chrom:start-end with BED's 0-based start).
//
// Only the first three columns are read. track, browser and # lines are skipped.
func ReadTargets(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open BED file: %w", err)
	}
	defer f.Close()

	var targets []string
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		b, ok, err := parseInterval(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("failed to read BED file %s, line %d: %w", filename, lineNum, err)
		}
		if ok {
			targets = append(targets, Locus{Chrom: b.Chrom, Start: b.ChromStart, End: b.ChromEnd}.String())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read BED file %s: %w", filename, err)
	}
	return targets, nil
}

// parseInterval reads the chrom, start and end of a BED line. ok is false for
// blank and header lines.
func parseInterval(line string) (b bed.Bed, ok bool, err error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" || isBedHeader(line) {
		return b, false, nil
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return b, false, fmt.Errorf("expected at least 3 tab separated columns: %q", line)
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return b, false, fmt.Errorf("bad start in %q: %w", line, err)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return b, false, fmt.Errorf("bad end in %q: %w", line, err)
	}

	return bed.Bed{Chrom: fields[0], ChromStart: start, ChromEnd: end, FieldsInitialized: 3}, true, nil
}

func isBedHeader(line string) bool {
	if strings.HasPrefix(line, "#") {
		return true
	}
	first := strings.Fields(line)[0]
	return first == "track" || first == "browser"
}
