//go:build integration
// +build integration

package dbtest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/distribution/reference"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
)

var (
	stopTimeout = 10 * time.Second
)

func newDockerClient() (*dockerClient, error) {
	cli, err := client.NewEnvClient()
	if err != nil {
		return nil, fmt.Errorf("unable to create docker client: %w", err)
	}
	return &dockerClient{cli}, nil
}

type dockerClient struct {
	*client.Client
}

type containerConfig struct {
	image string
	ports []*portMapping
	env   []string
	cmd   []string
}

type portMapping struct {
	HostPort      string
	ContainerPort string
}

func (d *dockerClient) runContainer(ctx context.Context, config *containerConfig, logs io.Writer) (string, error) {
	imageName, err := reference.ParseNormalizedNamed(config.image)
	if err != nil {
		return "", fmt.Errorf("unable to normalize image name: %w", err)
	}
	fullName := imageName.String()

	out, err := d.ImagePull(ctx, fullName, types.ImagePullOptions{})
	if err != nil {
		return "", fmt.Errorf("unable to pull image: %w", err)
	}
	defer out.Close()
	_, _ = io.Copy(logs, out)

	created, err := d.createContainer(ctx, fullName, config)
	if err != nil {
		return "", fmt.Errorf("unable create container: %w", err)
	}

	if err := d.ContainerStart(ctx, created.ID, types.ContainerStartOptions{}); err != nil {
		return "", fmt.Errorf("unable to start the container: %w", err)
	}
	return created.ID, nil
}

func (d *dockerClient) createContainer(ctx context.Context, image string, config *containerConfig) (*container.ContainerCreateCreatedBody, error) {
	portBinding := nat.PortMap{}
	for _, portmap := range config.ports {
		containerPort, err := nat.NewPort("tcp", portmap.ContainerPort)
		if err != nil {
			return nil, fmt.Errorf("unable to get the port: %w", err)
		}
		portBinding[containerPort] = []nat.PortBinding{{
			HostIP:   "127.0.0.1",
			HostPort: portmap.HostPort,
		}}
	}

	cfg := &container.Config{
		Image: image,
		Env:   config.env,
	}
	if len(config.cmd) > 0 {
		cfg.Cmd = config.cmd
	}

	hostConfig := &container.HostConfig{
		PortBindings: portBinding,
	}

	created, err := d.ContainerCreate(ctx, cfg, hostConfig, &network.NetworkingConfig{}, nil, "")
	if err != nil {
		return nil, fmt.Errorf("could not create container: %w", err)
	}
	return &created, nil
}

func (d *dockerClient) removeContainer(ctx context.Context, id string) error {
	if err := d.ContainerStop(ctx, id, &stopTimeout); err != nil {
		return fmt.Errorf("failed stopping container: %w", err)
	}

	err := d.ContainerRemove(ctx, id, types.ContainerRemoveOptions{
		RemoveVolumes: true,
		// RemoveLinks=true causes "Error response from daemon: Conflict, cannot
		// remove the default name of the container"
		RemoveLinks: false,
		Force:       false,
	})
	if err != nil {
		return fmt.Errorf("failed removing container: %w", err)
	}
	return nil
}
