package cli

import (
	"fmt"

	"github.com/mahavak/rhonda/internal/keyring"
	"github.com/mahavak/rhonda/internal/storage"
)

type ConfigSetConnectionCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string (without a password; it is prompted for by the server or supplied via the keyring)."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if ok, err := storage.ValidateConnString(c.ConnString); !ok {
		return err
	}

	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}

	fmt.Println("Connection string stored in the OS keyring.")
	fmt.Println("Run rhonda with a postgres:// config path to use it.")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from the OS keyring.")
	return nil
}
