package userclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultPerPage     = 10
	defaultHTTPTimeout = 5 * time.Second
)

type Config struct {
	ServerURL   string
	PerPage     int
	HTTPTimeout time.Duration
	// Now stamps end_time for "finish"; defaults to time.Now.
	Now func() time.Time
}

func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	client := NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "portal-cli\nserver=%s\n\n", serverURL)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		var cmdErr error
		switch command {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "sessions":
			page, parseErr := parsePositiveInt(args, 1, 1)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid page: %v\n", parseErr)
				continue
			}
			size, parseErr := parsePositiveInt(args, 2, perPage)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid per_page: %v\n", parseErr)
				continue
			}
			cmdErr = runSessions(ctx, out, client, page, size)
		case "show":
			id, ok := requireID(out, args, "usage: show <session_id> [page]")
			if !ok {
				continue
			}
			page, parseErr := parsePositiveInt(args, 2, 1)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid page: %v\n", parseErr)
				continue
			}
			cmdErr = runShow(ctx, out, client, id, page, perPage)
		case "start":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: start <group_id> <activity_id>")
				continue
			}
			groupID, groupErr := parseID(args[1])
			activityID, activityErr := parseID(args[2])
			if groupErr != nil || activityErr != nil {
				fmt.Fprintln(out, "group_id and activity_id must be positive integers")
				continue
			}
			cmdErr = runStart(ctx, out, client, groupID, activityID)
		case "review":
			id, ok := requireID(out, args, "usage: review <session_id>")
			if !ok {
				continue
			}
			cmdErr = runReview(ctx, reader, out, client, id)
		case "finish":
			id, ok := requireID(out, args, "usage: finish <session_id>")
			if !ok {
				continue
			}
			cmdErr = runFinish(ctx, out, client, id, now())
		case "delete":
			id, ok := requireID(out, args, "usage: delete <session_id>")
			if !ok {
				continue
			}
			if cmdErr = client.DeleteSession(ctx, id); cmdErr == nil {
				fmt.Fprintf(out, "Deleted session %d.\n", id)
			}
		case "word":
			id, ok := requireID(out, args, "usage: word <word_id>")
			if !ok {
				continue
			}
			cmdErr = runWord(ctx, out, client, id)
		case "reset":
			cmdErr = runReset(ctx, reader, out, client)
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}

		if cmdErr != nil {
			fmt.Fprintf(out, "error: %v\n", describeClientError(cmdErr, serverURL))
		}
	}
}

func runSessions(ctx context.Context, out io.Writer, client *HTTPClient, page, perPage int) error {
	list, err := client.ListSessions(ctx, page, perPage)
	if err != nil {
		return err
	}

	if len(list.Items) == 0 {
		fmt.Fprintf(out, "No study sessions (total %d).\n", list.Total)
		return nil
	}

	fmt.Fprintf(out, "Study sessions (page %d/%d, %d total):\n", list.Page, list.TotalPages, list.Total)
	for _, session := range list.Items {
		printSession(out, session)
	}
	return nil
}

func runShow(ctx context.Context, out io.Writer, client *HTTPClient, id int64, page, perPage int) error {
	detail, err := client.GetSession(ctx, id, page, perPage)
	if err != nil {
		return err
	}

	printSession(out, detail.Session)
	if len(detail.Words) == 0 {
		fmt.Fprintln(out, "No words reviewed on this page.")
		return nil
	}

	fmt.Fprintf(out, "Words (page %d/%d, %d total):\n", detail.Page, detail.TotalPages, detail.Total)
	for _, word := range detail.Words {
		fmt.Fprintf(out, "  %d. %s (%s) %s correct=%d wrong=%d\n",
			word.ID, word.Kanji, word.Romaji, word.English, word.CorrectCount, word.WrongCount)
	}
	return nil
}

func runStart(ctx context.Context, out io.Writer, client *HTTPClient, groupID, activityID int64) error {
	session, err := client.CreateSession(ctx, groupID, activityID)
	if err != nil {
		return err
	}
	fmt.Fprint(out, "Started ")
	printSession(out, session)
	return nil
}

// runReview collects reviews until a blank word id and submits them as one batch.
func runReview(ctx context.Context, reader *bufio.Reader, out io.Writer, client *HTTPClient, id int64) error {
	var reviews []Review
	for {
		wordLine, err := prompt(reader, out, "word id (blank to submit): ")
		if err != nil {
			return err
		}
		if wordLine == "" {
			break
		}
		wordID, err := parseID(wordLine)
		if err != nil {
			fmt.Fprintln(out, "word id must be a positive integer")
			continue
		}

		correct, err := promptYesNo(reader, out, "correct? (yes/no): ")
		if err != nil {
			return err
		}
		response, err := prompt(reader, out, "response (optional): ")
		if err != nil {
			return err
		}

		review := Review{WordID: wordID, Correct: correct}
		if response != "" {
			review.Response = &response
		}
		reviews = append(reviews, review)
	}

	if len(reviews) == 0 {
		fmt.Fprintln(out, "Nothing to submit.")
		return nil
	}

	result, err := client.SubmitReviews(ctx, id, reviews)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.Message)
	return nil
}

func runFinish(ctx context.Context, out io.Writer, client *HTTPClient, id int64, at time.Time) error {
	session, err := client.FinishSession(ctx, id, at)
	if err != nil {
		return err
	}
	fmt.Fprint(out, "Finished ")
	printSession(out, session)
	return nil
}

func runWord(ctx context.Context, out io.Writer, client *HTTPClient, id int64) error {
	word, err := client.GetWord(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d. %s (%s) %s correct=%d wrong=%d\n",
		word.ID, word.Kanji, word.Romaji, word.English, word.CorrectCount, word.WrongCount)
	return nil
}

func runReset(ctx context.Context, reader *bufio.Reader, out io.Writer, client *HTTPClient) error {
	confirmed, err := promptYesNo(reader, out, "delete all study sessions and reviews? (yes/no): ")
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(out, "Reset cancelled.")
		return nil
	}

	message, err := client.ResetHistory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, message)
	return nil
}

func printSession(out io.Writer, session Session) {
	fmt.Fprintf(out, "session %d: %s / %s reviews=%d start=%s end=%s\n",
		session.ID,
		session.GroupName,
		session.ActivityName,
		session.ReviewItemsCount,
		session.StartTime.Format(time.RFC3339),
		session.EndTime.Format(time.RFC3339),
	)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  sessions [page] [per_page]")
	fmt.Fprintln(out, "  show <session_id> [page]")
	fmt.Fprintln(out, "  start <group_id> <activity_id>")
	fmt.Fprintln(out, "  review <session_id>")
	fmt.Fprintln(out, "  finish <session_id>")
	fmt.Fprintln(out, "  delete <session_id>")
	fmt.Fprintln(out, "  word <word_id>")
	fmt.Fprintln(out, "  reset")
	fmt.Fprintln(out, "  exit")
}

func requireID(out io.Writer, args []string, usage string) (int64, bool) {
	if len(args) < 2 {
		fmt.Fprintln(out, usage)
		return 0, false
	}
	id, err := parseID(args[1])
	if err != nil {
		fmt.Fprintln(out, usage)
		return 0, false
	}
	return id, true
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return id, nil
}

func parsePositiveInt(args []string, index int, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptYesNo(reader *bufio.Reader, out io.Writer, label string) (bool, error) {
	for {
		fmt.Fprint(out, label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(out, "Please answer yes or no.")
		}
	}
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("portal service unavailable at %s", serverURL)
	}
	return err
}
