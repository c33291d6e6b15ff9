package transport

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// buildSSHConfig creates an SSH client config from the opener's credentials.
// A private key is offered first, then the password both as plain password
// auth and keyboard-interactive, which many IOS images require.
func (o *SSHOpener) buildSSHConfig() (*ssh.ClientConfig, error) {
	if o.creds.Username == "" {
		return nil, fmt.Errorf("username not set")
	}

	var auth []ssh.AuthMethod

	if o.creds.HasKey() {
		signer, err := loadSigner(o.creds.PrivateKeyPath, o.creds.PrivateKeyPassphrase)
		if err != nil {
			return nil, err
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}

	if o.creds.Password != "" {
		password := o.creds.Password
		auth = append(auth,
			ssh.Password(password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		)
	}

	if len(auth) == 0 {
		return nil, fmt.Errorf("no authentication method: set a password or private key")
	}

	hostKeyCallback, err := o.hostKeyCallback()
	if err != nil {
		return nil, err
	}

	return &ssh.ClientConfig{
		User:            o.creds.Username,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         o.opts.ConnectTimeout,
	}, nil
}

func (o *SSHOpener) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if o.opts.KnownHostsPath == "" {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	callback, err := knownhosts.New(o.opts.KnownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts: %w", err)
	}
	return callback, nil
}

func loadSigner(path, passphrase string) (ssh.Signer, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	var signer ssh.Signer
	if passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(keyData)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return signer, nil
}
