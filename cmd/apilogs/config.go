package cliapilogs

import (
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/apilogs/apilogs"
	"github.com/nathants/apilogs/lib"
	"gopkg.in/yaml.v3"
)

func init() {
	lib.Commands["apilogs-config"] = apilogsConfig
	lib.Args["apilogs-config"] = apilogsConfigArgs{}
}

type apilogsConfigArgs struct {
}

func (apilogsConfigArgs) Description() string {
	return "\nprint the configuration resolved from the environment and the aws session region\n"
}

func apilogsConfig() {
	var args apilogsConfigArgs
	arg.MustParse(&args)
	data, err := yaml.Marshal(struct {
		apilogs.Config `yaml:",inline"`
		SessionRegion  string `yaml:"session-region"`
	}{
		Config:        apilogs.ConfigFromEnv(),
		SessionRegion: lib.Region(),
	})
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Print(string(data))
}
