package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"usecase-assistant/internal/platform/config"
	"usecase-assistant/internal/usecase/models"
	"usecase-assistant/internal/usecase/serializer"
	"usecase-assistant/internal/usecase/store"
	"usecase-assistant/internal/usecase/usecasetest"
)

type CLISuite struct {
	suite.Suite
	cfg     config.Config
	workDir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.workDir = s.T().TempDir()
	s.cfg = config.Config{
		StorageDir:   filepath.Join(s.workDir, "store"),
		LogLevel:     "error",
		AuditJournal: filepath.Join(s.workDir, "audit.jsonl"),
	}
}

// run executes one command line and returns its exit code and output.
func (s *CLISuite) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(s.cfg)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := Execute(context.Background(), root, &stderr)
	return code, stdout.String(), stderr.String()
}

func (s *CLISuite) writeDoc(name string, uc *models.UseCase) string {
	data, err := serializer.MustNew().Serialize(uc)
	s.Require().NoError(err)
	path := filepath.Join(s.workDir, name)
	s.Require().NoError(os.WriteFile(path, data, 0o644))
	return path
}

func (s *CLISuite) TestLifecycle() {
	doc := s.writeDoc("purchase.json", usecasetest.Valid("uc-1", "Purchase Items"))

	code, out, _ := s.run("list")
	s.Equal(0, code)
	s.Contains(out, "No use cases stored.")

	code, out, _ = s.run("import", doc)
	s.Require().Equal(0, code)
	s.Contains(out, "imported uc-1")

	code, out, _ = s.run("list")
	s.Equal(0, code)
	s.Contains(out, "uc-1")
	s.Contains(out, "Purchase Items")
	s.Contains(out, "User Goal")

	code, out, _ = s.run("show", "uc-1")
	s.Equal(0, code)
	original, err := os.ReadFile(doc)
	s.Require().NoError(err)
	s.Equal(string(original), out)

	record := filepath.Join(s.cfg.StorageDir, "uc-1.json")
	before, err := os.ReadFile(record)
	s.Require().NoError(err)

	code, _, errOut := s.run("delete", "uc-1")
	s.Equal(2, code)
	s.Contains(errOut, "--yes")

	after, err := os.ReadFile(record)
	s.Require().NoError(err)
	s.Equal(before, after)
	fs, err := store.New(s.cfg.StorageDir)
	s.Require().NoError(err)
	s.True(fs.Exists(context.Background(), "uc-1"))

	code, out, _ = s.run("delete", "uc-1", "--yes")
	s.Equal(0, code)
	s.Contains(out, "deleted uc-1")

	code, _, _ = s.run("show", "uc-1")
	s.Equal(3, code)

	code, out, _ = s.run("audit", "uc-1")
	s.Equal(0, code)
	s.Contains(out, "usecase_created")
	s.Contains(out, "usecase_deleted")
}

func (s *CLISuite) TestValidate() {
	s.Run("valid document", func() {
		code, out, _ := s.run("validate", s.writeDoc("ok.json", usecasetest.Valid("uc-1", "Purchase Items")))
		s.Equal(0, code)
		s.Contains(out, "valid")
	})

	s.Run("rule violations are listed", func() {
		p := usecasetest.Valid("uc-2", "Purchase Items").Params()
		p.Title = "Manage"
		uc, err := models.NewUseCase(p)
		s.Require().NoError(err)

		code, out, _ := s.run("validate", s.writeDoc("bad.json", uc))
		s.Equal(1, code)
		s.Contains(out, "[title]")
		s.Contains(out, "function-oriented")
	})

	s.Run("schema violation", func() {
		path := filepath.Join(s.workDir, "partial.json")
		s.Require().NoError(os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))

		code, _, errOut := s.run("validate", path)
		s.Equal(2, code)
		s.Contains(errOut, "Schema validation failed")
	})
}

func (s *CLISuite) TestImportRejectsInvalidDocument() {
	p := usecasetest.Valid("uc-3", "Purchase Items").Params()
	p.SuccessGuarantees = []string{"Create the order"}
	uc, err := models.NewUseCase(p)
	s.Require().NoError(err)

	code, out, _ := s.run("import", s.writeDoc("bad.json", uc))
	s.Equal(1, code)
	s.Contains(out, "[successGuarantee]")

	_, err = os.Stat(filepath.Join(s.cfg.StorageDir, "uc-3.json"))
	s.True(os.IsNotExist(err))
}

func (s *CLISuite) TestMetricsTextfile() {
	s.cfg.MetricsTextfile = filepath.Join(s.workDir, "usecase.prom")

	code, _, _ := s.run("import", s.writeDoc("ok.json", usecasetest.Valid("uc-1", "Purchase Items")))
	s.Require().Equal(0, code)

	data, err := os.ReadFile(s.cfg.MetricsTextfile)
	s.Require().NoError(err)
	s.Contains(string(data), "usecase_saved_total 1")
}

func (s *CLISuite) TestYAMLDocuments() {
	yamlData, err := serializer.MustNew().SerializeYAML(usecasetest.Valid("uc-5", "Purchase Items"))
	s.Require().NoError(err)
	path := filepath.Join(s.workDir, "draft.yaml")
	s.Require().NoError(os.WriteFile(path, yamlData, 0o644))

	code, _, _ := s.run("validate", path)
	s.Equal(0, code)

	code, _, _ = s.run("import", path)
	s.Require().Equal(0, code)

	code, out, _ := s.run("show", "uc-5", "--format", "yaml")
	s.Equal(0, code)
	s.Equal(string(yamlData), out)

	code, _, _ = s.run("show", "uc-5", "--format", "xml")
	s.Equal(2, code)
}

func (s *CLISuite) TestMetricsTextfileWrittenOnFailure() {
	s.cfg.MetricsTextfile = filepath.Join(s.workDir, "usecase.prom")
	p := usecasetest.Valid("uc-4", "Purchase Items").Params()
	p.Title = "Manage"
	uc, err := models.NewUseCase(p)
	s.Require().NoError(err)

	code, _, _ := s.run("import", s.writeDoc("bad.json", uc))
	s.Require().Equal(1, code)

	data, err := os.ReadFile(s.cfg.MetricsTextfile)
	s.Require().NoError(err)
	s.Contains(string(data), "usecase_validation_failures_total 1")

	code, _, _ = s.run("show", "missing")
	s.Require().Equal(3, code)

	data, err = os.ReadFile(s.cfg.MetricsTextfile)
	s.Require().NoError(err)
	s.Contains(string(data), `usecase_store_errors_total{op="load"} 1`)
}

func (s *CLISuite) TestDirFlagOverridesConfig() {
	other := filepath.Join(s.workDir, "other")
	code, _, _ := s.run("--dir", other, "import", s.writeDoc("ok.json", usecasetest.Valid("uc-9", "Purchase Items")))
	s.Require().Equal(0, code)

	_, err := os.Stat(filepath.Join(other, "uc-9.json"))
	s.NoError(err)
}
