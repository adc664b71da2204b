// dsum hashes blocks of a raw device.
//
// Usage: dsum [opts]
//
//	+ /disk:   Raw block device path.
//	+ /out:    Output manifest file.
//	+ /align:  Alignment/size of contiguous disk to hash.
//	  /bytes:   Amount of data to actually process, in bytes.
//	  /iosize:  I/O transfer size.
//	  /iodepth: I/O queue depth; hw queue depths: SATA=~32; NVMe=~256.
//	  /threads: Worker count; SHA-1 is bad @ ~250MB/s; do the math for device bandwidth.
//
//	+ = required arg.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Emjayen/dsum"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, diag *os.File) int {
	cfg, err := dsum.ParseArgs(args)
	if err != nil {
		fmt.Fprintf(diag, "\r\n%v", err)
		return -1
	}

	if err := dsum.Run(context.Background(), cfg, diag); err != nil {
		fmt.Fprintf(diag, "\r\n%v", err)
		return -1
	}

	return 0
}
