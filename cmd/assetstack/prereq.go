package main

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var errPrerequisiteMissing = errors.New("prerequisite missing")

// lookPath is swappable in tests.
var lookPath = exec.LookPath

func checkPrerequisites(binaries []string) error {
	var missing []string
	for _, binary := range binaries {
		if _, err := lookPath(binary); err != nil {
			missing = append(missing, binary)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errPrerequisiteMissing, strings.Join(missing, ", "))
	}
	return nil
}
