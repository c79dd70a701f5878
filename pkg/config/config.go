// Package config loads the settings of the cross-chain governance tooling from
// an optional YAML file overridden by XCADMIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	solanasdk "github.com/pyth-network/governance/sdk/solana"
	"github.com/pyth-network/governance/types"
)

const envPrefix = "XCADMIN"

const (
	MultisigVersionMesh = "mesh"
	MultisigVersionV4   = "v4"
)

// LimitsConfig holds the byte and instruction budgets proposals are built against.
type LimitsConfig struct {
	PacketDataSize             int `mapstructure:"packet_data_size" yaml:"packet_data_size" validate:"gt=0"`
	ExecutorPayloadSize        int `mapstructure:"executor_payload_size" yaml:"executor_payload_size" validate:"gt=0,ltfield=PacketDataSize"`
	MaxInstructionsPerProposal int `mapstructure:"max_instructions_per_proposal" yaml:"max_instructions_per_proposal" validate:"gt=0,lte=255"`
}

// ProgramsConfig locates the governance programs on the cluster. Values are base58.
type ProgramsConfig struct {
	Wormhole       string `mapstructure:"wormhole" yaml:"wormhole" validate:"required,pubkey"`
	RemoteExecutor string `mapstructure:"remote_executor" yaml:"remote_executor" validate:"required,pubkey"`
	Multisig       string `mapstructure:"multisig" yaml:"multisig" validate:"required,pubkey"`
}

// MultisigConfig selects the vault proposals are created in.
type MultisigConfig struct {
	Version string `mapstructure:"version" yaml:"version" validate:"required,oneof=mesh v4"`
	Address string `mapstructure:"address" yaml:"address" validate:"omitempty,pubkey"`
	// Member creates, activates and approves the proposals.
	Member string `mapstructure:"member" yaml:"member" validate:"omitempty,pubkey"`
	// AuthorityIndex is the vault authority proposals execute under.
	AuthorityIndex uint32 `mapstructure:"authority_index" yaml:"authority_index" validate:"gt=0"`
}

// RemoteConfig describes how instructions are relayed to the remote executor.
type RemoteConfig struct {
	TargetChain           string `mapstructure:"target_chain" yaml:"target_chain" validate:"required"`
	Payer                 string `mapstructure:"payer" yaml:"payer" validate:"omitempty,pubkey"`
	EmitterAuthorityIndex uint32 `mapstructure:"emitter_authority_index" yaml:"emitter_authority_index"`
}

// Config wraps the entire configuration.
type Config struct {
	RPCURL   string         `mapstructure:"rpc_url" yaml:"rpc_url" validate:"omitempty,url"`
	Limits   LimitsConfig   `mapstructure:"limits" yaml:"limits"`
	Programs ProgramsConfig `mapstructure:"programs" yaml:"programs"`
	Multisig MultisigConfig `mapstructure:"multisig" yaml:"multisig"`
	Remote   RemoteConfig   `mapstructure:"remote" yaml:"remote"`
	// Chains registers chains missing from the built-in table, by name.
	Chains map[string]uint16 `mapstructure:"chains" yaml:"chains"`
}

// Default returns the Solana mainnet configuration.
func Default() *Config {
	limits := solanasdk.DefaultLimits()
	programs := solanasdk.DefaultProgramAddresses()

	return &Config{
		Limits: LimitsConfig{
			PacketDataSize:             limits.PacketDataSize,
			ExecutorPayloadSize:        limits.ExecutorPayloadSize,
			MaxInstructionsPerProposal: limits.MaxInstructionsPerProposal,
		},
		Programs: ProgramsConfig{
			Wormhole:       programs.Wormhole.String(),
			RemoteExecutor: programs.RemoteExecutor.String(),
			Multisig:       programs.Multisig.String(),
		},
		Multisig: MultisigConfig{
			Version:        MultisigVersionMesh,
			AuthorityIndex: 1,
		},
		Remote: RemoteConfig{
			TargetChain:           string(types.ChainPythnet),
			EmitterAuthorityIndex: 1,
		},
	}
}

// envBindings maps config keys to the environment variables that can set them.
var envBindings = map[string][]string{
	"rpc_url":                              {envPrefix + "_RPC_URL"},
	"limits.packet_data_size":              {envPrefix + "_LIMITS_PACKET_DATA_SIZE"},
	"limits.executor_payload_size":         {envPrefix + "_LIMITS_EXECUTOR_PAYLOAD_SIZE"},
	"limits.max_instructions_per_proposal": {envPrefix + "_LIMITS_MAX_INSTRUCTIONS_PER_PROPOSAL"},
	"programs.wormhole":                    {envPrefix + "_PROGRAMS_WORMHOLE"},
	"programs.remote_executor":             {envPrefix + "_PROGRAMS_REMOTE_EXECUTOR"},
	"programs.multisig":                    {envPrefix + "_PROGRAMS_MULTISIG"},
	"multisig.version":                     {envPrefix + "_MULTISIG_VERSION"},
	"multisig.address":                     {envPrefix + "_MULTISIG_ADDRESS"},
	"multisig.member":                      {envPrefix + "_MULTISIG_MEMBER"},
	"multisig.authority_index":             {envPrefix + "_MULTISIG_AUTHORITY_INDEX"},
	"remote.target_chain":                  {envPrefix + "_REMOTE_TARGET_CHAIN"},
	"remote.payer":                         {envPrefix + "_REMOTE_PAYER"},
	"remote.emitter_authority_index":       {envPrefix + "_REMOTE_EMITTER_AUTHORITY_INDEX"},
}

// Load reads the config at filePath, when it exists, on top of the defaults.
// Environment variables override both. The result is validated.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if filePath != "" {
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			v.SetConfigFile(filePath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("unable to read config %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("limits.packet_data_size", cfg.Limits.PacketDataSize)
	v.SetDefault("limits.executor_payload_size", cfg.Limits.ExecutorPayloadSize)
	v.SetDefault("limits.max_instructions_per_proposal", cfg.Limits.MaxInstructionsPerProposal)
	v.SetDefault("programs.wormhole", cfg.Programs.Wormhole)
	v.SetDefault("programs.remote_executor", cfg.Programs.RemoteExecutor)
	v.SetDefault("programs.multisig", cfg.Programs.Multisig)
	v.SetDefault("multisig.version", cfg.Multisig.Version)
	v.SetDefault("multisig.authority_index", cfg.Multisig.AuthorityIndex)
	v.SetDefault("remote.target_chain", cfg.Remote.TargetChain)
	v.SetDefault("remote.emitter_authority_index", cfg.Remote.EmitterAuthorityIndex)
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}

func validatePublicKey(fl validator.FieldLevel) bool {
	_, err := solana.PublicKeyFromBase58(fl.Field().String())
	return err == nil
}

// Validate checks the tag constraints, then registers the extra chains so
// that every chain the config names resolves.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("pubkey", validatePublicKey); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return err
	}

	names := make([]string, 0, len(c.Chains))
	for name := range c.Chains {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := types.RegisterChain(types.ChainName(name), types.ChainID(c.Chains[name])); err != nil {
			return fmt.Errorf("chains.%s: %w", name, err)
		}
	}

	if _, err := types.ChainName(c.Remote.TargetChain).ID(); err != nil {
		return fmt.Errorf("remote.target_chain: %w", err)
	}

	return nil
}

// SolanaLimits returns the limits in the form the builders take.
func (c *Config) SolanaLimits() solanasdk.Limits {
	return solanasdk.Limits{
		PacketDataSize:             c.Limits.PacketDataSize,
		ExecutorPayloadSize:        c.Limits.ExecutorPayloadSize,
		MaxInstructionsPerProposal: c.Limits.MaxInstructionsPerProposal,
	}
}

// ProgramAddresses returns the configured program ids. Validate guarantees they parse.
func (c *Config) ProgramAddresses() (solanasdk.ProgramAddresses, error) {
	wormhole, err := solana.PublicKeyFromBase58(c.Programs.Wormhole)
	if err != nil {
		return solanasdk.ProgramAddresses{}, fmt.Errorf("programs.wormhole: %w", err)
	}
	executor, err := solana.PublicKeyFromBase58(c.Programs.RemoteExecutor)
	if err != nil {
		return solanasdk.ProgramAddresses{}, fmt.Errorf("programs.remote_executor: %w", err)
	}
	multisig, err := solana.PublicKeyFromBase58(c.Programs.Multisig)
	if err != nil {
		return solanasdk.ProgramAddresses{}, fmt.Errorf("programs.multisig: %w", err)
	}

	return solanasdk.ProgramAddresses{Wormhole: wormhole, RemoteExecutor: executor, Multisig: multisig}, nil
}

// RemoteExecutor returns the relay settings, paid by payer when the config names none.
func (c *Config) RemoteExecutor(payer solana.PublicKey) (solanasdk.RemoteExecutor, error) {
	programs, err := c.ProgramAddresses()
	if err != nil {
		return solanasdk.RemoteExecutor{}, err
	}
	if c.Remote.Payer != "" {
		payer, err = solana.PublicKeyFromBase58(c.Remote.Payer)
		if err != nil {
			return solanasdk.RemoteExecutor{}, fmt.Errorf("remote.payer: %w", err)
		}
	}

	return solanasdk.RemoteExecutor{
		WormholeProgramID:     programs.Wormhole,
		Payer:                 payer,
		TargetChain:           types.ChainName(c.Remote.TargetChain),
		EmitterAuthorityIndex: c.Remote.EmitterAuthorityIndex,
	}, nil
}
