// Package deploy provides CTI contract deployment routine.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ctinet-dev/cti-contract/contracts"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for CTI contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// ContractPrm groups deployment parameters of a single CTI contract.
type ContractPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the CTI contract suite deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance hosting the CTI contracts.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Administrator account set in the Platform, Reputation and Incentive
	// contracts. Zero value delegates administration to the committee.
	Admin util.Uint160

	PlatformContract     ContractPrm
	ReputationContract   ContractPrm
	IncentiveContract    ContractPrm
	AccessContract       ContractPrm
	IntelligenceContract ContractPrm
}

// Deploy deploys the CTI contract suite represented by given Prm on the
// given Prm.Blockchain.
//
// The Intelligence contract address is a function of the deploying account
// and the contract name, so it is computed upfront and passed to the leaf
// contracts which authorize it as a caller. For this reason all contracts
// must be deployed from the same account.
//
// Contracts are deployed in strict order, contracts dependent on others come
// last:
//  1. Platform
//  2. Reputation
//  3. Incentive
//  4. Access
//  5. Intelligence
//
// Deploy is idempotent: contracts already present on the chain are skipped.
func Deploy(ctx context.Context, prm Prm) error {
	switch {
	case prm.Logger == nil:
		return errors.New("missing logger")
	case prm.Blockchain == nil:
		return errors.New("missing blockchain client")
	case prm.LocalAccount == nil:
		return errors.New("missing local account")
	}

	for _, c := range []struct {
		name string
		prm  ContractPrm
	}{
		{"Platform", prm.PlatformContract},
		{"Reputation", prm.ReputationContract},
		{"Incentive", prm.IncentiveContract},
		{"Access", prm.AccessContract},
		{"Intelligence", prm.IntelligenceContract},
	} {
		if c.prm.Manifest.Name == "" {
			return fmt.Errorf("missing %s contract manifest", c.name)
		}
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	sender := act.Sender()
	mgmt := management.New(act)

	var admin []byte
	if !prm.Admin.Equals(util.Uint160{}) {
		admin = prm.Admin.BytesBE()
	}

	intelligenceAddress := state.CreateContractHash(sender,
		prm.IntelligenceContract.NEF.Checksum, prm.IntelligenceContract.Manifest.Name)

	platformAddress, err := syncCTIContract(ctx, syncCTIContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		management: mgmt,
		name:       "Platform",
		local:      prm.PlatformContract,
		deployArgs: []any{admin, intelligenceAddress},
	})
	if err != nil {
		return fmt.Errorf("sync Platform contract with the chain: %w", err)
	}

	reputationAddress, err := syncCTIContract(ctx, syncCTIContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		management: mgmt,
		name:       "Reputation",
		local:      prm.ReputationContract,
		deployArgs: []any{admin, intelligenceAddress},
	})
	if err != nil {
		return fmt.Errorf("sync Reputation contract with the chain: %w", err)
	}

	incentiveAddress, err := syncCTIContract(ctx, syncCTIContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		management: mgmt,
		name:       "Incentive",
		local:      prm.IncentiveContract,
		deployArgs: []any{admin, intelligenceAddress},
	})
	if err != nil {
		return fmt.Errorf("sync Incentive contract with the chain: %w", err)
	}

	accessAddress, err := syncCTIContract(ctx, syncCTIContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		management: mgmt,
		name:       "Access",
		local:      prm.AccessContract,
		deployArgs: []any{intelligenceAddress},
	})
	if err != nil {
		return fmt.Errorf("sync Access contract with the chain: %w", err)
	}

	onChainIntelligenceAddress, err := syncCTIContract(ctx, syncCTIContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		management: mgmt,
		name:       "Intelligence",
		local:      prm.IntelligenceContract,
		deployArgs: []any{platformAddress, reputationAddress, incentiveAddress, accessAddress},
	})
	if err != nil {
		return fmt.Errorf("sync Intelligence contract with the chain: %w", err)
	}

	if !onChainIntelligenceAddress.Equals(intelligenceAddress) {
		return fmt.Errorf("unexpected Intelligence contract address: on-chain %s instead of %s",
			onChainIntelligenceAddress, intelligenceAddress)
	}

	prm.Logger.Info("CTI contract suite successfully deployed")

	return nil
}

// ReadEmbeddedContracts fills contract deployment parameters of prm from the
// compiled contracts embedded into the module.
func ReadEmbeddedContracts(prm *Prm) error {
	cs, err := contracts.Get()
	if err != nil {
		return fmt.Errorf("read embedded contracts: %w", err)
	}

	mRequired := map[string]*ContractPrm{
		"CTI Platform":     &prm.PlatformContract,
		"CTI Reputation":   &prm.ReputationContract,
		"CTI Incentive":    &prm.IncentiveContract,
		"CTI Access":       &prm.AccessContract,
		"CTI Intelligence": &prm.IntelligenceContract,
	}

	for i := range cs {
		p, ok := mRequired[cs[i].Manifest.Name]
		if ok {
			p.Manifest = cs[i].Manifest
			p.NEF = cs[i].NEF

			delete(mRequired, cs[i].Manifest.Name)
		}
	}

	if len(mRequired) > 0 {
		missing := make([]string, 0, len(mRequired))
		for name := range mRequired {
			missing = append(missing, name)
		}

		return fmt.Errorf("some contracts are required but not embedded: %v", missing)
	}

	return nil
}

// syncCTIContractPrm groups parameters of syncCTIContract.
type syncCTIContractPrm struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	management *management.Contract
	name       string
	local      ContractPrm
	deployArgs []any
}

// syncCTIContract deploys the contract unless it is already present on the
// chain. In both cases the contract address is returned.
func syncCTIContract(ctx context.Context, prm syncCTIContractPrm) (util.Uint160, error) {
	address := state.CreateContractHash(prm.actor.Sender(), prm.local.NEF.Checksum, prm.local.Manifest.Name)

	prm.logger.Info("synchronizing contract with the chain...",
		zap.String("name", prm.name), zap.Stringer("address", address))

	_, err := prm.blockchain.GetContractStateByHash(address)
	if err == nil {
		prm.logger.Info("contract is already on the chain",
			zap.String("name", prm.name), zap.Stringer("address", address))
		return address, nil
	} else if !strings.Contains(err.Error(), "Unknown contract") {
		return util.Uint160{}, fmt.Errorf("read on-chain state of the contract: %w", err)
	}

	if ctx.Err() != nil {
		return util.Uint160{}, fmt.Errorf("wait for contract synchronization: %w", ctx.Err())
	}

	txID, vub, err := prm.management.Deploy(&prm.local.NEF, &prm.local.Manifest, prm.deployArgs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send transaction deploying the contract: %w", err)
	}

	prm.logger.Info("transaction deploying the contract has been sent, waiting...",
		zap.String("name", prm.name), zap.Stringer("tx", txID), zap.Uint32("vub", vub))

	_, err = prm.actor.Wait(txID, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deploy transaction: %w", err)
	}

	prm.logger.Info("contract successfully deployed",
		zap.String("name", prm.name), zap.Stringer("address", address))

	return address, nil
}
