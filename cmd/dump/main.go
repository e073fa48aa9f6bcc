package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ctinet-dev/cti-contract/contracts"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	deployerAddress := flag.String("deployer", "", "Neo address of the account the CTI contracts were deployed from")
	outDir := flag.String("out", "testdata", "Directory to write contract storage dumps to")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *deployerAddress == "":
		log.Fatal("missing deployer address")
	}

	deployer, err := address.StringToUint160(*deployerAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("decode deployer address: %w", err))
	}

	err = os.MkdirAll(*outDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	err = _dump(*neoRPCEndpoint, *outDir, deployer)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("CTI contracts are successfully dumped to '%s/'\n", *outDir)
}

// storageItem is a single key-value pair of the contract storage.
type storageItem struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

func _dump(neoBlockchainRPCEndpoint, rootDir string, deployer util.Uint160) error {
	b, err := newRemoteBlockChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	cs, err := contracts.Get()
	if err != nil {
		return fmt.Errorf("read embedded contracts: %w", err)
	}

	for i := range cs {
		name := cs[i].Manifest.Name

		log.Printf("Processing contract '%s'...\n", name)

		h := state.CreateContractHash(deployer, cs[i].NEF.Checksum, name)

		_, err = b.getContractByHash(h)
		if err != nil {
			return fmt.Errorf("get '%s' contract state: %w", name, err)
		}

		var items []storageItem

		err = b.iterateContractStorage(h, func(key, value []byte) error {
			items = append(items, storageItem{Key: key, Value: value})
			return nil
		})
		if err != nil {
			return fmt.Errorf("iterate '%s' contract storage: %w", name, err)
		}

		err = writeContractDump(rootDir, name, items)
		if err != nil {
			return fmt.Errorf("write '%s' contract dump: %w", name, err)
		}
	}

	return nil
}

func writeContractDump(rootDir, name string, items []storageItem) error {
	f, err := os.Create(filepath.Join(rootDir, name+".json"))
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", " ")

	return enc.Encode(items)
}
