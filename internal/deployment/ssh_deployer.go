package deployment

import (
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// deployTarget is a parsed user@host:path deploy URL
type deployTarget struct {
	User       string
	Host       string
	RemotePath string
}

// SSHDeployer publishes report files via SSH/SCP
type SSHDeployer struct {
	keyPath        string
	knownHostsFile string
	deployURL      string
	timeout        time.Duration
	client         *ssh.Client
	connected      bool
}

// NewSSHDeployer creates a new SSH deployer. When knownHostsFile is empty the
// server host key is not verified.
func NewSSHDeployer(deployURL, keyPath, knownHostsFile string, timeout time.Duration) *SSHDeployer {
	return &SSHDeployer{
		keyPath:        keyPath,
		knownHostsFile: knownHostsFile,
		deployURL:      deployURL,
		timeout:        timeout,
	}
}

// parseDeployURL parses a deploy URL in format: user@host:path
func parseDeployURL(deployURL string) (deployTarget, error) {
	if deployURL == "" {
		return deployTarget{}, fmt.Errorf("deploy URL is empty")
	}

	user, hostPath, ok := strings.Cut(deployURL, "@")
	if !ok || user == "" {
		return deployTarget{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	host, remotePath, ok := strings.Cut(hostPath, ":")
	if !ok || host == "" || remotePath == "" {
		return deployTarget{}, fmt.Errorf("invalid deploy URL format: expected user@host:path")
	}

	return deployTarget{User: user, Host: host, RemotePath: remotePath}, nil
}

func (d *SSHDeployer) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if d.knownHostsFile == "" {
		log.Warn().Msg("DEPLOY_KNOWN_HOSTS not set; skipping host key verification")
		return ssh.InsecureIgnoreHostKey(), nil
	}

	callback, err := knownhosts.New(d.knownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts %s: %w", d.knownHostsFile, err)
	}
	return callback, nil
}

// Connect establishes SSH connection
func (d *SSHDeployer) Connect() error {
	if d.connected {
		return nil
	}

	target, err := parseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	keyData, err := os.ReadFile(d.keyPath)
	if err != nil {
		return fmt.Errorf("failed to read SSH key file %s: %w", d.keyPath, err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return fmt.Errorf("failed to parse SSH private key: %w", err)
	}

	hostKeyCallback, err := d.hostKeyCallback()
	if err != nil {
		return err
	}

	config := &ssh.ClientConfig{
		User: target.User,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: hostKeyCallback,
		Timeout:         d.timeout,
	}

	d.client, err = ssh.Dial("tcp", net.JoinHostPort(target.Host, "22"), config)
	if err != nil {
		return fmt.Errorf("failed to connect to SSH server %s: %w", target.Host, err)
	}

	d.connected = true
	log.Info().
		Str("host", target.Host).
		Str("user", target.User).
		Msg("Successfully connected to SSH server")

	return nil
}

// Disconnect closes SSH connection
func (d *SSHDeployer) Disconnect() error {
	if d.client != nil {
		err := d.client.Close()
		d.connected = false
		d.client = nil
		return err
	}
	return nil
}

// PublishReport uploads a report file under its own base name
func (d *SSHDeployer) PublishReport(localPath string) error {
	return d.DeployFile(localPath, filepath.Base(localPath))
}

// DeployFile uploads a file via SCP
func (d *SSHDeployer) DeployFile(localPath, filename string) error {
	if !d.connected {
		if err := d.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	target, err := parseDeployURL(d.deployURL)
	if err != nil {
		return fmt.Errorf("failed to parse deploy URL: %w", err)
	}

	localFile, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file %s: %w", localPath, err)
	}
	defer localFile.Close()

	fileInfo, err := localFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat local file: %w", err)
	}

	session, err := d.client.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create SSH session: %w", err)
	}
	defer session.Close()

	// Remote side is always a POSIX path
	remoteFilePath := path.Join(target.RemotePath, filename)

	stdin, err := session.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	if err := session.Start(fmt.Sprintf("scp -t %s", remoteFilePath)); err != nil {
		return fmt.Errorf("failed to start SCP session: %w", err)
	}

	if err := writeSCPPayload(stdin, localFile, fileInfo.Size(), filename); err != nil {
		return err
	}

	stdin.Close()
	if err := session.Wait(); err != nil {
		return fmt.Errorf("SCP session failed: %w", err)
	}

	log.Info().
		Str("local_path", localPath).
		Str("remote_path", remoteFilePath).
		Int64("size", fileInfo.Size()).
		Msg("Successfully deployed file via SCP")

	return nil
}

// writeSCPPayload sends the SCP file header, the content and the end marker
func writeSCPPayload(w io.Writer, content io.Reader, size int64, filename string) error {
	if _, err := fmt.Fprintf(w, "C0644 %d %s\n", size, filename); err != nil {
		return fmt.Errorf("failed to write SCP header: %w", err)
	}

	if _, err := io.Copy(w, content); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	if _, err := w.Write([]byte{0}); err != nil {
		return fmt.Errorf("failed to write SCP end marker: %w", err)
	}
	return nil
}
