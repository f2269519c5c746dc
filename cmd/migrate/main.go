package main

import (
	"os"

	"github.com/sandeepkv93/storefront-admin-api/internal/tools/common"
	"github.com/sandeepkv93/storefront-admin-api/internal/tools/migrate"
)

func main() {
	os.Exit(common.Main(migrate.NewRootCommand()))
}
