package inits

import (
	"book-library/app/smoke/config"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// BindFlags 把命令行参数与 SMOKE_ 前缀的环境变量绑定到同一组 key
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix("SMOKE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"base-url", "timeout", "wait", "username", "password", "cleanup"} {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %q not found", name)
		}
		if err := v.BindPFlag(name, flag); err != nil {
			return err
		}
	}

	return nil
}

func Config(v *viper.Viper) (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if cfg.BaseURL = strings.TrimRight(v.GetString("base-url"), "/"); cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url not set")
	}

	if cfg.Timeout = v.GetDuration("timeout"); cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout should be a positive duration")
	}
	if cfg.Wait = v.GetDuration("wait"); cfg.Wait < 0 {
		return nil, fmt.Errorf("wait should not be negative")
	}

	if cfg.Username = v.GetString("username"); cfg.Username == "" {
		return nil, fmt.Errorf("username not set")
	}

	cfg.Password = v.GetString("password")
	if cfg.Password == "" {
		// 没有提供密码时，在终端里询问
		password, err := readPassword(fmt.Sprintf("Password for %s: ", cfg.Username))
		if err != nil {
			return nil, err
		}
		cfg.Password = password
	}

	cfg.Cleanup = v.GetBool("cleanup")

	return &cfg, nil
}

func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password not set and stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}

	return password, nil
}
