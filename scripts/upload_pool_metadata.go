package main

import (
	"flag"
	"log"
	"os"

	"moonpool/pkg/pinata"
	"moonpool/pkg/wallet"
)

// Pins a pool metadata document to Pinata and prints the gateway URL to use
// as the pool uri. Optionally verifies the owner key exists in the keystore.
//
// Usage:
//
//	PINATA_JWT=... go run scripts/upload_pool_metadata.go \
//	    -name "Moon Villa" -symbol MVLA -image https://... \
//	    -owner <address> -keystore configs/keystore
func main() {
	name := flag.String("name", "", "pool name")
	symbol := flag.String("symbol", "", "droplet token symbol")
	description := flag.String("description", "", "pool description")
	image := flag.String("image", "", "image URL")
	owner := flag.String("owner", "", "pool owner address (optional, checked against keystore)")
	keystoreDir := flag.String("keystore", "", "keystore directory")
	flag.Parse()

	if *name == "" {
		log.Fatal("please provide a pool name")
	}
	if *symbol == "" {
		log.Fatal("please provide a token symbol")
	}

	jwt := os.Getenv("PINATA_JWT")
	if jwt == "" {
		log.Fatal("PINATA_JWT is not set")
	}

	if *owner != "" {
		km := wallet.NewKeyManager(*keystoreDir)
		password := os.Getenv("KEYSTORE_PASSWORD")
		if _, err := km.LoadKeyStoreEntry(*owner, password); err != nil {
			log.Fatalf("owner key not found in keystore: %v", err)
		}
	}

	client := pinata.NewClient(jwt)
	cid, err := client.PinPoolMetadata(&pinata.PoolMetadata{
		Name:        *name,
		Symbol:      *symbol,
		Description: *description,
		Image:       *image,
	})
	if err != nil {
		log.Fatalf("failed to pin metadata: %v", err)
	}

	log.Printf("pinned metadata: cid=%s", cid)
	log.Printf("pool uri: %s", client.GatewayURL(cid))
}
