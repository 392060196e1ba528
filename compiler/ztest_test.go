package compiler_test

import (
	"testing"

	"github.com/brimdata/splc/ztest"
)

func TestZTest(t *testing.T) {
	ztest.Run(t, "testdata/ztest")
}
