// Command reactssr validates and inspects reactssr build artifacts.
//
//	reactssr validate --workdir ./web
//	reactssr routes --format json
//	REACTSSR_SOURCE=s3 REACTSSR_S3_BUCKET=builds reactssr validate
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
