package draft

import (
	"bytes"
	"os"

	"myplan/internal/tasks/data"

	"gopkg.in/yaml.v3"
)

const draftTimeLayout = "2006-01-02 15:04"

// Render writes a task as a draft that Parse reads back into the same task.
func Render(task data.Task) ([]byte, error) {
	task = data.Hydrate(task)
	kind := task.Kind()

	meta := Frontmatter{
		Due:       task.DueDate.Format(draftTimeLayout),
		Completed: task.Completed,
		Type:      string(kind),
	}
	if task.Priority != "" && task.Priority != data.PriorityNone {
		meta.Priority = string(task.Priority)
	}

	switch kind {
	case data.TypeLearning:
		meta.Videos = &Videos{Total: task.TotalVideos, Completed: task.CompletedVideos}
	case data.TypeLoan:
		meta.Loan = &Loan{
			Amount:      task.LoanAmount,
			Outstanding: task.LoanOutstanding,
			Rate:        task.LoanInterestRate,
			Emi:         task.LoanEmi,
		}
	case data.TypeMeeting:
		start, end := data.MeetingWindow(task)
		meta.Meeting = &Meeting{
			Start: start.Format(draftTimeLayout),
			End:   end.Format(draftTimeLayout),
			Link:  task.MeetingLink,
			Info:  task.MeetingInfo,
		}
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	yamlBytes, err := yaml.Marshal(meta)
	if err != nil {
		return nil, err
	}
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")

	buf.WriteString("# " + task.Title + "\n")
	if task.Description != "" {
		buf.WriteString("\n" + task.Description + "\n")
	}
	if len(task.SubTasks) > 0 {
		buf.WriteString("\n")
		for _, st := range task.SubTasks {
			mark := " "
			if st.Completed {
				mark = "x"
			}
			buf.WriteString("- [" + mark + "] " + st.Title + "\n")
		}
	}
	return buf.Bytes(), nil
}

// Write renders task to path.
func Write(task data.Task, path string) error {
	b, err := Render(task)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
