package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var replacer = strings.NewReplacer(".", "_", "-", "_")

type argType interface {
	string | bool | int | time.Duration
}

// envName is the variable a flag reads its default from.
func envName[T argType](cfg boundEnvVar[T]) string {
	if cfg.Env != nil {
		return *cfg.Env
	}
	return strings.ToUpper(replacer.Replace(cfg.Name))
}

// envNames maps every bound flag to the variable it reads its default from.
func envNames() map[string]string {
	names := make(map[string]string)
	collectEnvNames(names, envMapString)
	collectEnvNames(names, envMapBool)
	collectEnvNames(names, envMapCount)
	collectEnvNames(names, envMapDuration)
	return names
}

func collectEnvNames[T argType](names map[string]string, m map[*T]boundEnvVar[T]) {
	for _, cfg := range m {
		names[cfg.Name] = envName(cfg)
	}
}

// lookupEnv ignores empty values; the Actions runner exports every declared input, set or not.
func lookupEnv(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v, found := os.LookupEnv(name)
	return v, found && v != ""
}

func bindEnvMap[T argType](cmd *cobra.Command, m map[*T]boundEnvVar[T]) {
	for v, cfg := range m {
		env := envName(cfg)
		desc := fmt.Sprintf("[%s] %s", env, cfg.Description)

		switch vt := any(v).(type) {
		case *string:
			def := any(*v).(string)
			if vf, found := lookupEnv(env); found {
				def = vf
			}
			if cfg.Short == nil {
				cmd.PersistentFlags().StringVar(vt, cfg.Name, def, desc)
			} else {
				cmd.PersistentFlags().StringVarP(vt, cfg.Name, *cfg.Short, def, desc)
			}
		case *bool:
			def := any(*v).(bool)
			if _, found := lookupEnv(env); found {
				def = viper.GetBool(env)
			}
			if cfg.Short == nil {
				cmd.PersistentFlags().BoolVar(vt, cfg.Name, def, desc)
			} else {
				cmd.PersistentFlags().BoolVarP(vt, cfg.Name, *cfg.Short, def, desc)
			}
		case *int:
			def := any(*v).(int)
			if vf, found := lookupEnv(env); found {
				if n, err := strconv.Atoi(vf); err == nil {
					def = n
				}
			}
			if cfg.Short == nil {
				cmd.PersistentFlags().CountVar(vt, cfg.Name, desc)
			} else {
				cmd.PersistentFlags().CountVarP(vt, cfg.Name, *cfg.Short, desc)
			}
			_ = cmd.PersistentFlags().Lookup(cfg.Name).Value.Set(strconv.Itoa(def))
		case *time.Duration:
			def := any(*v).(time.Duration)
			if _, found := lookupEnv(env); found {
				def = viper.GetDuration(env)
			}
			if cfg.Short == nil {
				cmd.PersistentFlags().DurationVar(vt, cfg.Name, def, desc)
			} else {
				cmd.PersistentFlags().DurationVarP(vt, cfg.Name, *cfg.Short, def, desc)
			}
		default:
			log.Panicf("command-args parsing error: unhandled default case for type %T", vt)
		}

		_ = viper.BindPFlag(cfg.Name, cmd.PersistentFlags().Lookup(cfg.Name))
		_ = viper.BindEnv(cfg.Name, env)

		if cfg.Hidden {
			_ = cmd.PersistentFlags().MarkHidden(cfg.Name)
		}
	}
}
