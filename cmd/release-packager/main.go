// Command release-packager packages cargo release binaries into a tar.gz or
// zip archive named {package}-{tag}-{asset_target}.
package main

import "github.com/oshokin/release-packager/cmd/release-packager/cmd"

func main() {
	cmd.Execute()
}
