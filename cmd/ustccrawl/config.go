package main

import (
	"log"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Logfile  string `toml:"logfile"`
	Loglevel string `toml:"loglevel"`
	BaseUrl  string `toml:"baseurl"`
	Filter   string `toml:"filter"`
	Out      string `toml:"out"`
}

func LoadConfig(filepath string) Config {
	conf := Config{
		Loglevel: "INFO",
		Filter:   "Mathematics",
		Out:      "out",
	}
	if filepath == "" {
		return conf
	}
	if _, err := toml.DecodeFile(filepath, &conf); err != nil {
		log.Fatalln("Error on loading config: ", err)
	}
	return conf
}
