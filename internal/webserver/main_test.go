package webserver

import (
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	if err := LoadTranslations(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load translations:", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}
