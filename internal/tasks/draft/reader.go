// Package draft turns markdown notes into tasks and back. A draft is a
// markdown file with optional YAML frontmatter; the first heading is the
// title, the first paragraph the description and task-list items become
// subtasks.
package draft

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"myplan/internal/tasks/data"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML block at the top of a draft.
type Frontmatter struct {
	Due       string   `yaml:"due,omitempty"`
	Priority  string   `yaml:"priority,omitempty"`
	Type      string   `yaml:"type,omitempty"`
	Completed bool     `yaml:"completed,omitempty"`
	Videos    *Videos  `yaml:"videos,omitempty"`
	Loan      *Loan    `yaml:"loan,omitempty"`
	Meeting   *Meeting `yaml:"meeting,omitempty"`
}

type Videos struct {
	Total     int `yaml:"total"`
	Completed int `yaml:"completed"`
}

type Loan struct {
	Amount      float64 `yaml:"amount"`
	Outstanding float64 `yaml:"outstanding"`
	Rate        float64 `yaml:"rate"`
	Emi         float64 `yaml:"emi"`
}

type Meeting struct {
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
	Link  string `yaml:"link,omitempty"`
	Info  string `yaml:"info,omitempty"`
}

// Draft is a parsed markdown note.
type Draft struct {
	Title       string
	Description string
	SubTasks    []data.SubTask
	Meta        Frontmatter
}

// Read reads a draft file. A draft without a heading takes its title from
// the file name.
func Read(path string) (Draft, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, err
	}
	d, err := Parse(content)
	if err != nil {
		return Draft{}, fmt.Errorf("%s: %w", path, err)
	}
	if d.Title == "" {
		d.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Parse splits off the frontmatter and walks the markdown body.
func Parse(content []byte) (Draft, error) {
	meta, body, err := splitFrontmatter(content)
	if err != nil {
		return Draft{}, err
	}

	d := Draft{Meta: meta}
	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(body))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			if d.Title == "" {
				d.Title = strings.TrimSpace(string(n.Text(body)))
			}
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			if d.Description == "" && n.Parent() != nil && n.Parent().Kind() == ast.KindDocument {
				d.Description = blockText(n, body)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindListItem:
			if st, ok := subTask(n, body); ok {
				d.SubTasks = append(d.SubTasks, st)
			}
		}
		return ast.WalkContinue, nil
	})

	return d, nil
}

// Task converts the draft. now fills a missing due date.
func (d Draft) Task(now time.Time) (data.Task, error) {
	m := d.Meta
	task := data.Task{
		Title:       d.Title,
		Description: d.Description,
		SubTasks:    d.SubTasks,
		Completed:   m.Completed,
		DueDate:     now,
	}

	var err error
	if task.Priority, err = data.ParsePriority(m.Priority); err != nil {
		return data.Task{}, err
	}
	if task.TaskType, err = data.ParseTaskType(m.Type); err != nil {
		return data.Task{}, err
	}
	if m.Due != "" {
		due, ok := data.ParseTime(m.Due)
		if !ok {
			return data.Task{}, fmt.Errorf("unreadable due date %q", m.Due)
		}
		task.DueDate = due
	}

	if m.Videos != nil {
		task.TotalVideos = m.Videos.Total
		task.CompletedVideos = m.Videos.Completed
		if m.Type == "" {
			task.TaskType = data.TypeLearning
		}
	}
	if m.Loan != nil {
		task.LoanAmount = m.Loan.Amount
		task.LoanOutstanding = m.Loan.Outstanding
		task.LoanInterestRate = m.Loan.Rate
		task.LoanEmi = m.Loan.Emi
		if m.Type == "" {
			task.TaskType = data.TypeLoan
		}
	}
	if m.Meeting != nil {
		if m.Type == "" {
			task.TaskType = data.TypeMeeting
		}
		task.MeetingLink = m.Meeting.Link
		task.MeetingInfo = m.Meeting.Info
		if m.Meeting.Start != "" {
			start, ok := data.ParseTime(m.Meeting.Start)
			if !ok {
				return data.Task{}, fmt.Errorf("unreadable meeting start %q", m.Meeting.Start)
			}
			task.MeetingStartTime = &start
		}
		if m.Meeting.End != "" {
			end, ok := data.ParseTime(m.Meeting.End)
			if !ok {
				return data.Task{}, fmt.Errorf("unreadable meeting end %q", m.Meeting.End)
			}
			task.MeetingEndTime = &end
		}
	}

	return task, nil
}

func splitFrontmatter(content []byte) (Frontmatter, []byte, error) {
	var meta Frontmatter
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return meta, content, nil
	}

	end := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return meta, content, nil
	}

	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &meta); err != nil {
		return meta, nil, fmt.Errorf("frontmatter: %w", err)
	}
	return meta, bytes.Join(lines[end+1:], []byte("\n")), nil
}

// subTask reads a "- [ ] title" / "- [x] title" item.
func subTask(item ast.Node, src []byte) (data.SubTask, bool) {
	block := item.FirstChild()
	if block == nil {
		return data.SubTask{}, false
	}
	box, ok := block.FirstChild().(*east.TaskCheckBox)
	if !ok {
		return data.SubTask{}, false
	}
	title := strings.TrimSpace(string(block.Text(src)))
	if title == "" {
		return data.SubTask{}, false
	}
	return data.SubTask{Title: title, Completed: box.IsChecked}, true
}

func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
	}
	return strings.Join(parts, "\n")
}
