package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"emperror.dev/errors"
	"github.com/je4/ustc2zotero/pkg/bibliography"
	"github.com/je4/ustc2zotero/pkg/filesystem"
	"github.com/je4/ustc2zotero/pkg/ustc"
	"github.com/je4/ustc2zotero/pkg/zoterordf"
	"github.com/op/go-logging"
)

var _logformat = logging.MustStringFormatter(
	`%{time:2006-01-02T15:04:05.000} %{shortfunc} > %{level:.5s} - %{message}`,
)

func CreateLogger(module string, logfile string, loglevel string) (log *logging.Logger, lf *os.File) {
	log = logging.MustGetLogger(module)
	var err error
	if logfile != "" {
		lf, err = os.OpenFile(logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Errorf("Cannot open logfile %v: %v", logfile, err)
		}
	} else {
		lf = os.Stderr
	}
	backend := logging.NewLogBackend(lf, "", 0)
	backendLeveled := logging.AddModuleLevel(backend)
	backendLeveled.SetLevel(logging.GetLevel(loglevel), "")

	logging.SetFormatter(_logformat)
	logging.SetBackend(backendLeveled)

	return
}

func main() {
	cfgfile := flag.String("cfg", "", "location of config file")
	rdffile := flag.String("out", "", "explicit rdf output path, input is read as json")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-cfg configfile] [-out rdffile] inputfile\n", os.Args[0])
		os.Exit(1)
	}
	input := flag.Arg(0)

	config := LoadConfig(*cfgfile)
	logger, lf := CreateLogger("ustc2rdf", config.Logfile, config.Loglevel)
	defer lf.Close()

	if err := convert(&config, logger, input, *rdffile); err != nil {
		logger.Errorf("conversion of %s failed: %v", input, err)
		os.Exit(1)
	}
}

// convert runs one conversion. The complete result is assembled in memory
// before anything is written, a failing run leaves no partial output behind.
func convert(config *Config, logger *logging.Logger, input, rdffile string) error {
	raw, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "cannot read %s", input)
	}

	var items []bibliography.Item
	var relations ustc.Relations
	if rdffile == "" && strings.EqualFold(filepath.Ext(input), ".csv") {
		conv := ustc.NewConverter(logger)
		items, relations, err = conv.Convert(string(raw))
		if err != nil {
			return errors.Wrapf(err, "cannot convert records from %s", input)
		}
		logger.Infof("%v items from %s", len(items), input)
	} else {
		library, err := bibliography.LoadLibrary(raw)
		if err != nil {
			return errors.Wrapf(err, "cannot load library from %s", input)
		}
		items = library.Items
		logger.Infof("%v items, %v collections from %s", len(items), len(library.Collections), input)
	}

	rdf := zoterordf.NewSerializer().Serialize(items)

	if rdffile == "" {
		rdffile = strings.TrimSuffix(input, filepath.Ext(input)) + ".rdf"
	}
	if err := writeArtifact(config, logger, rdffile, []byte(rdf), "application/rdf+xml"); err != nil {
		return errors.Wrapf(err, "cannot write rdf to %s", rdffile)
	}
	logger.Infof("wrote %s", rdffile)

	if len(relations) > 0 {
		data, err := json.MarshalIndent(relations, "", "    ")
		if err != nil {
			return errors.Wrapf(err, "cannot marshal relations")
		}
		relfile := strings.TrimSuffix(input, filepath.Ext(input)) + "_relations.json"
		if err := writeArtifact(config, logger, relfile, data, "application/json"); err != nil {
			return errors.Wrapf(err, "cannot write relations to %s", relfile)
		}
		logger.Infof("wrote %s (%v duplicate ids)", relfile, len(relations))
	}

	return nil
}

// writeArtifact puts one finished artifact on the configured target, s3 when
// an endpoint is configured, the local directory of path otherwise.
func writeArtifact(config *Config, logger *logging.Logger, path string, data []byte, contentType string) error {
	var fs filesystem.FileSystem
	var folder string
	var err error
	if config.S3.Endpoint != "" {
		fs, err = filesystem.NewS3Fs(config.S3.Endpoint, config.S3.AccessKeyId, config.S3.SecretAccessKey, config.S3.UseSSL)
		if err != nil {
			return errors.Wrapf(err, "cannot connect to s3 %s", config.S3.Endpoint)
		}
		folder = config.S3.Bucket
	} else {
		fs, err = filesystem.NewLocalFs(filepath.Dir(path), logger)
		if err != nil {
			return errors.Wrapf(err, "cannot use folder %s", filepath.Dir(path))
		}
	}
	return fs.FilePut(folder, filepath.Base(path), data, filesystem.FilePutOptions{ContentType: contentType})
}
