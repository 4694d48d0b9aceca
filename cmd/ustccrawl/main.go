package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/je4/ustc2zotero/pkg/filesystem"
	"github.com/je4/ustc2zotero/pkg/ustc"
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
	filter := flag.String("filter", "", "explore filter, overrides config")
	flag.Parse()

	config := LoadConfig(*cfgfile)
	if *filter != "" {
		config.Filter = *filter
	}

	logger, lf := CreateLogger("ustccrawl", config.Logfile, config.Loglevel)
	defer lf.Close()

	if err := os.MkdirAll(config.Out, 0755); err != nil {
		logger.Errorf("cannot create output folder %s: %v", config.Out, err)
		os.Exit(1)
	}
	fs, err := filesystem.NewLocalFs(config.Out, logger)
	if err != nil {
		logger.Errorf("cannot use output folder %s: %v", config.Out, err)
		os.Exit(1)
	}

	crawler := ustc.NewCrawler(config.BaseUrl, logger)

	ids, err := crawler.CrawlIds(config.Filter)
	if err != nil {
		logger.Errorf("crawl of filter %s failed: %v", config.Filter, err)
		os.Exit(1)
	}
	logger.Infof("collected %v ids for filter %s", len(ids), config.Filter)

	data, err := json.MarshalIndent(ids, "", "    ")
	if err != nil {
		logger.Errorf("cannot marshal ids: %v", err)
		os.Exit(1)
	}
	if err := fs.FilePut("", "ids.json", data, filesystem.FilePutOptions{ContentType: "application/json"}); err != nil {
		logger.Errorf("cannot write ids.json: %v", err)
		os.Exit(1)
	}

	records := crawler.CrawlRecords(ids)
	logger.Infof("fetched %v records", len(records))

	csv := ustc.WriteRecordsCSV(records)
	if err := fs.FilePut("", "records.csv", []byte(csv), filesystem.FilePutOptions{ContentType: "text/csv"}); err != nil {
		logger.Errorf("cannot write records.csv: %v", err)
		os.Exit(1)
	}
}
