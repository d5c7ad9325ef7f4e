package db

import (
	_ "embed"
)

//go:embed fixtures/library.yaml
var demoFixtures []byte

// DemoFixtures returns the built-in library data set: three authors, the
// first owning "Java 101".."Java 103" (book ids 1-3 on a fresh database) and
// the second owning four books.
func DemoFixtures() *Fixtures {
	f, err := ParseFixtures(demoFixtures)
	if err != nil {
		panic(err)
	}
	return f
}
