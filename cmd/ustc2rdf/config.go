package main

import (
	"log"

	"github.com/BurntSushi/toml"
)

type S3 struct {
	Endpoint        string `toml:"endpoint"`
	AccessKeyId     string `toml:"accessKeyId"`
	SecretAccessKey string `toml:"secretAccessKey"`
	UseSSL          bool   `toml:"useSSL"`
	Bucket          string `toml:"bucket"`
}

type Config struct {
	Logfile  string `toml:"logfile"`
	Loglevel string `toml:"loglevel"`
	S3       S3     `toml:"s3"`
}

// LoadConfig reads the optional toml config. Without a config file the
// converter logs to stderr and writes next to the input file.
func LoadConfig(filepath string) Config {
	conf := Config{
		Loglevel: "INFO",
	}
	if filepath == "" {
		return conf
	}
	if _, err := toml.DecodeFile(filepath, &conf); err != nil {
		log.Fatalln("Error on loading config: ", err)
	}
	return conf
}
