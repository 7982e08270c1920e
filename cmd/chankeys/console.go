// Console output
package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/pivaldi/channels"
)

type console struct {
	w       io.Writer
	printMu sync.Mutex
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

func (c *console) Printf(format string, args ...any) {
	c.printMu.Lock()
	defer c.printMu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

// Keypair prints one labelled keypair; the secret only when showSecret is set.
func (c *console) Keypair(label string, kp *channels.Keypair, showSecret bool) {
	c.printMu.Lock()
	defer c.printMu.Unlock()
	fmt.Fprintf(c.w, "%s public: %s\n", label, kp.Public)
	if showSecret {
		fmt.Fprintf(c.w, "%s secret: %s\n", label, kp.Secret.Encode())
	}
}
