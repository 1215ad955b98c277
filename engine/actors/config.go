package actors

import (
	"os"
	"strings"

	"copt/engine/library"
	"github.com/spf13/viper"
)

// GenesisPreviousHash is the previous_hash sentinel carried by block 0.
const GenesisPreviousHash library.Sha256 = "0"

// DefaultAdminID is the identity the operator acts as when registering residents.
const DefaultAdminID library.ResidentID = 999

// InitConfig sets up our Viper config object
func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
	config.SetEnvPrefix("copt")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	config.SetDefault("rootDir", homeDir+"/copt/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		library.LogCLI(err.Error(), 4)
	}
	config.SetDefault("flatFileDir", "data/")
	config.SetDefault("ledgerMind", "ledger")
	config.SetDefault("logLevel", 4)
	config.SetDefault("adminID", DefaultAdminID)
	library.SetLogLevel(config.GetInt("logLevel"))
	// Create our working directory and config file if not exist
	initRootDir(config)
	if err = library.Touch(config.GetString("rootDir") + "config.yaml"); err != nil {
		library.LogCLI(err.Error(), 1)
		return
	}
	err = config.WriteConfig()
	if err != nil {
		library.LogCLI(err.Error(), 1)
	}
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.MkdirAll(conf.GetString("rootDir"), 0755)
		if err != nil {
			library.LogCLI(err, 0)
		}
	}
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	if conf == nil {
		conf = viper.New()
	}
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}

// AdminID is the configured administrator identity.
func AdminID() library.ResidentID {
	if !MakeOrGetConfig().IsSet("adminID") {
		return DefaultAdminID
	}
	return library.ResidentID(MakeOrGetConfig().GetUint32("adminID"))
}
