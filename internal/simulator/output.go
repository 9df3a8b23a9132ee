package simulator

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rasoihub/tiffinbox/internal/cloudwriter"
	"github.com/rasoihub/tiffinbox/internal/models"
	"github.com/rasoihub/tiffinbox/internal/simulator/producers"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// OutputDestination receives finalized order events. It stands in for
// the order/payment subsystem boundary: whatever is on the other side
// (a console, files, a lake, a broker) owns the events from here on.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	if _, err := os.Stdout.Write([]byte(output)); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// JSONOutput appends one JSON document per line to a day-partitioned
// file per topic.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	year, month, day := time.Now().UTC().Date()
	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)
	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)

	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		var err error
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ParquetOutput writes one parquet file per topic, locally or to cloud
// storage depending on configuration.
type ParquetOutput struct {
	basePath           string
	folder             string
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.OutputDestination != "" && config.OutputDestination != "local" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	pw, ok := p.writers[topic]
	if !ok {
		var err error
		pw, err = p.createWriter(topic)
		if err != nil {
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
		p.writers[topic] = pw
	}

	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}
	if err := pw.Write(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createWriter(topic string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	var err error

	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = newCloudParquetFile(cw)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	sc, err := GetSchema(topic)
	if err != nil {
		return nil, err
	}

	pw, err := writer.NewParquetWriter(fw, nil, 4)
	if err != nil {
		return nil, err
	}
	pw.SchemaHandler = sc
	p.files[topic] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	var lastErr error
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for topic %s: %v", topic, err)
		}
		if f, ok := p.files[topic]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for topic %s: %v", topic, err)
			}
		}
	}
	return lastErr
}

// cloudParquetFile adapts a CloudWriter to the parquet source
// interface. Cloud objects are write-only: Read and seek-from-end are
// not supported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (int, error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func (s *Simulator) determineOutputDestination() OutputDestination {
	if s.Config.KafkaEnabled {
		producer, err := producers.NewSaramaProducer(s.Config)
		if err != nil {
			log.Fatalf("Failed to create Sarama producer: %v", err)
		}
		return producer
	}
	if s.Config.OutputPath != "" {
		switch s.Config.OutputFormat {
		case "parquet":
			output, err := NewParquetOutput(s.Config)
			if err != nil {
				log.Fatalf("Failed to create Parquet output: %s", err)
			}
			return output
		case "json", "":
			return NewJSONOutput(s.Config.OutputPath, s.Config.OutputFolder)
		default:
			log.Fatalf("Unsupported output format: %s", s.Config.OutputFormat)
		}
	}
	return &ConsoleOutput{}
}
