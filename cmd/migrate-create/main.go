package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Scaffolds a timestamped up/down SQL pair under the migrations directory
// for the migrate command to pick up.
func main() {
	name := flag.String("name", "", "migration name, lowercase with underscores")
	dir := flag.String("dir", filepath.Join("db", "migrations"), "migrations directory")
	flag.Parse()

	if !validName(*name) {
		log.Fatalf("invalid migration name %q: use lowercase letters, digits and underscores", *name)
	}

	stamp := time.Now().UTC().Format("20060102150405")
	base := stamp + "_" + *name
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("create migrations dir %s: %v", *dir, err)
	}

	for _, suffix := range []string{".up.sql", ".down.sql"} {
		path := filepath.Join(*dir, base+suffix)
		if _, err := os.Stat(path); err == nil {
			log.Fatalf("migration already exists: %s", path)
		}
		header := fmt.Sprintf("-- %s (%s)\n", *name, suffix[1:len(suffix)-4])
		if err := os.WriteFile(path, []byte(header), 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("created migration file=%s", path)
	}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
